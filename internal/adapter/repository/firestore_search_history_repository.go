package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type firestoreSearchHistoryRepository struct {
	client *firestore.Client
}

func NewFirestoreSearchHistoryRepository(client *firestore.Client) repository.SearchHistoryRepository {
	return &firestoreSearchHistoryRepository{
		client: client,
	}
}

func (r *firestoreSearchHistoryRepository) Record(ctx context.Context, entry *entity.SearchEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("searchHistory").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to record search entry", err)
	}

	return nil
}

func (r *firestoreSearchHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.client.Collection("searchHistory").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)

	iter := query.Documents(ctx)
	var entries []*entity.SearchEntry

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate search history", err)
		}

		var entry entity.SearchEntry
		if err := doc.DataTo(&entry); err != nil {
			continue
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *firestoreSearchHistoryRepository) Clear(ctx context.Context, userID string) error {
	iter := r.client.Collection("searchHistory").Where("userId", "==", userID).Documents(ctx)

	batch := r.client.Batch()
	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate search history", err)
		}
		batch.Delete(doc.Ref)
		count++
	}

	if count == 0 {
		return nil
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to clear search history", err)
	}

	return nil
}
