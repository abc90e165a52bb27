package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, storefrontID string) (*entity.Favorite, error) {
	existing, err := r.get(ctx, userID, storefrontID)
	if err == nil && existing != nil {
		// Adding twice is a no-op, return the existing record.
		return existing, nil
	}

	favorite := &entity.Favorite{
		ID:           uuid.New().String(),
		UserID:       userID,
		StorefrontID: storefrontID,
		CreatedAt:    time.Now(),
	}

	_, err = r.client.Collection("favorites").Doc(favorite.ID).Set(ctx, favorite)
	if err != nil {
		return nil, errors.Internal("Failed to add favorite", err)
	}

	return favorite, nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, storefrontID string) error {
	favorite, err := r.get(ctx, userID, storefrontID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil // Removing a non-favorite is a no-op.
		}
		return err
	}

	_, err = r.client.Collection("favorites").Doc(favorite.ID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) IsFavorite(ctx context.Context, userID, storefrontID string) (bool, error) {
	_, err := r.get(ctx, userID, storefrontID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.FavoriteWithStorefront, int64, error) {
	query := r.client.Collection("favorites").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch favorites", err)
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

	var favorites []entity.FavoriteWithStorefront
	for i := start; i < end; i++ {
		var favorite entity.Favorite
		if err := allDocs[i].DataTo(&favorite); err != nil {
			log.Printf("Error parsing favorite data for user %s: %v", userID, err)
			continue
		}

		item := entity.FavoriteWithStorefront{
			ID:           favorite.ID,
			UserID:       favorite.UserID,
			StorefrontID: favorite.StorefrontID,
			CreatedAt:    favorite.CreatedAt,
		}

		storefrontDoc, err := r.client.Collection("storefronts").Doc(favorite.StorefrontID).Get(ctx)
		if err == nil {
			var storefront entity.Storefront
			if err := storefrontDoc.DataTo(&storefront); err == nil {
				item.Storefront = &storefront
			}
		}

		favorites = append(favorites, item)
	}

	return favorites, total, nil
}

func (r *firestoreFavoriteRepository) Count(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("favorites").Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count favorites", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreFavoriteRepository) get(ctx context.Context, userID, storefrontID string) (*entity.Favorite, error) {
	query := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Where("storefrontId", "==", storefrontID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Favorite", nil)
		}
		return nil, errors.Internal("Failed to query favorite", err)
	}

	var favorite entity.Favorite
	if err := doc.DataTo(&favorite); err != nil {
		return nil, errors.Internal("Failed to parse favorite data", err)
	}

	return &favorite, nil
}
