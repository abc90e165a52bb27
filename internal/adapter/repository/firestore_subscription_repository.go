package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

func NewFirestoreSubscriptionRepository(client *firestore.Client) repository.SubscriptionRepository {
	return &firestoreSubscriptionRepository{
		client: client,
	}
}

func (r *firestoreSubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.New().String()
	}

	now := time.Now()
	subscription.CreatedAt = now
	subscription.UpdatedAt = now

	_, err := r.client.Collection("subscriptions").Doc(subscription.ID).Set(ctx, subscription)
	if err != nil {
		return errors.Internal("Failed to create subscription", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	doc, err := r.client.Collection("subscriptions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Subscription", err)
		}
		return nil, errors.Internal("Failed to get subscription", err)
	}

	var subscription entity.Subscription
	if err := doc.DataTo(&subscription); err != nil {
		return nil, errors.Internal("Failed to parse subscription data", err)
	}

	return &subscription, nil
}

func (r *firestoreSubscriptionRepository) GetActiveByStorefrontID(ctx context.Context, storefrontID string) (*entity.Subscription, error) {
	query := r.client.Collection("subscriptions").
		Where("storefrontId", "==", storefrontID).
		Where("status", "==", "active").
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Subscription", nil)
		}
		return nil, errors.Internal("Failed to query active subscription", err)
	}

	var subscription entity.Subscription
	if err := doc.DataTo(&subscription); err != nil {
		return nil, errors.Internal("Failed to parse subscription data", err)
	}

	return &subscription, nil
}

func (r *firestoreSubscriptionRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Subscription, error) {
	query := r.client.Collection("subscriptions").
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var subscriptions []*entity.Subscription

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate subscriptions", err)
		}

		var subscription entity.Subscription
		if err := doc.DataTo(&subscription); err != nil {
			log.Printf("Error parsing subscription data for owner %s: %v", ownerID, err)
			continue
		}
		subscriptions = append(subscriptions, &subscription)
	}

	return subscriptions, nil
}

func (r *firestoreSubscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	subscription.UpdatedAt = time.Now()

	_, err := r.client.Collection("subscriptions").Doc(subscription.ID).Set(ctx, subscription)
	if err != nil {
		return errors.Internal("Failed to update subscription", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) CreateInvoice(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.IssuedAt.IsZero() {
		invoice.IssuedAt = time.Now()
	}

	_, err := r.client.Collection("invoices").Doc(invoice.ID).Set(ctx, invoice)
	if err != nil {
		return errors.Internal("Failed to create invoice", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) ListInvoices(ctx context.Context, subscriptionID string) ([]*entity.Invoice, error) {
	query := r.client.Collection("invoices").
		Where("subscriptionId", "==", subscriptionID).
		OrderBy("issuedAt", firestore.Desc)

	iter := query.Documents(ctx)
	var invoices []*entity.Invoice

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate invoices", err)
		}

		var invoice entity.Invoice
		if err := doc.DataTo(&invoice); err != nil {
			log.Printf("Error parsing invoice data for subscription %s: %v", subscriptionID, err)
			continue
		}
		invoices = append(invoices, &invoice)
	}

	return invoices, nil
}
