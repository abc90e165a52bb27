package repository

import (
	"context"

	"nuptio/internal/domain/entity"
)

type StorefrontRepository interface {
	Create(ctx context.Context, storefront *entity.Storefront) error
	GetByID(ctx context.Context, id string) (*entity.Storefront, error)
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Storefront, int64, error)
	SearchByName(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Storefront, int64, error)
	ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Storefront, int64, error)
	Update(ctx context.Context, storefront *entity.Storefront) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
