package repository

import (
	"context"

	"nuptio/internal/domain/entity"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	GetActiveByStorefrontID(ctx context.Context, storefrontID string) (*entity.Subscription, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Subscription, error)
	Update(ctx context.Context, subscription *entity.Subscription) error

	CreateInvoice(ctx context.Context, invoice *entity.Invoice) error
	ListInvoices(ctx context.Context, subscriptionID string) ([]*entity.Invoice, error)
}
