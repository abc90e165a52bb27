package repository

import (
	"context"

	"nuptio/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, storefrontID string) (*entity.Favorite, error)
	Remove(ctx context.Context, userID, storefrontID string) error
	IsFavorite(ctx context.Context, userID, storefrontID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.FavoriteWithStorefront, int64, error)
	Count(ctx context.Context, userID string) (int64, error)
}
