package repository

import (
	"context"

	"nuptio/internal/domain/entity"
)

type SearchHistoryRepository interface {
	Record(ctx context.Context, entry *entity.SearchEntry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.SearchEntry, error)
	Clear(ctx context.Context, userID string) error
}
