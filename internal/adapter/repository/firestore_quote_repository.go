package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type firestoreQuoteRepository struct {
	client *firestore.Client
}

func NewFirestoreQuoteRepository(client *firestore.Client) repository.QuoteRepository {
	return &firestoreQuoteRepository{
		client: client,
	}
}

func (r *firestoreQuoteRepository) Create(ctx context.Context, quote *entity.QuoteRequest) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}

	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now

	_, err := r.client.Collection("quoteRequests").Doc(quote.ID).Set(ctx, quote)
	if err != nil {
		return errors.Internal("Failed to create quote request", err)
	}

	return nil
}

func (r *firestoreQuoteRepository) GetByID(ctx context.Context, id string) (*entity.QuoteRequest, error) {
	doc, err := r.client.Collection("quoteRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Quote request", err)
		}
		return nil, errors.Internal("Failed to get quote request", err)
	}

	var quote entity.QuoteRequest
	if err := doc.DataTo(&quote); err != nil {
		return nil, errors.Internal("Failed to parse quote request data", err)
	}

	return &quote, nil
}

func (r *firestoreQuoteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.QuoteRequest, int64, error) {
	query := r.client.Collection("quoteRequests").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	return r.list(ctx, query, limit, offset)
}

func (r *firestoreQuoteRepository) ListByStorefrontID(ctx context.Context, storefrontID string, statusFilter string, limit, offset int) ([]*entity.QuoteRequest, int64, error) {
	query := r.client.Collection("quoteRequests").
		Where("storefrontId", "==", storefrontID)
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	return r.list(ctx, query, limit, offset)
}

func (r *firestoreQuoteRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.QuoteRequest, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch quote requests", err)
	}
	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var quotes []*entity.QuoteRequest
	for i := start; i < end; i++ {
		var quote entity.QuoteRequest
		if err := allDocs[i].DataTo(&quote); err != nil {
			log.Printf("Error parsing quote request data: %v", err)
			continue
		}
		quotes = append(quotes, &quote)
	}

	return quotes, total, nil
}

func (r *firestoreQuoteRepository) Update(ctx context.Context, quote *entity.QuoteRequest) error {
	quote.UpdatedAt = time.Now()

	_, err := r.client.Collection("quoteRequests").Doc(quote.ID).Set(ctx, quote)
	if err != nil {
		return errors.Internal("Failed to update quote request", err)
	}

	return nil
}
