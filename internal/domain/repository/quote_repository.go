package repository

import (
	"context"

	"nuptio/internal/domain/entity"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.QuoteRequest) error
	GetByID(ctx context.Context, id string) (*entity.QuoteRequest, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.QuoteRequest, int64, error)
	ListByStorefrontID(ctx context.Context, storefrontID string, status string, limit, offset int) ([]*entity.QuoteRequest, int64, error)
	Update(ctx context.Context, quote *entity.QuoteRequest) error
}
