package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type firestoreStorefrontRepository struct {
	client *firestore.Client
}

func NewFirestoreStorefrontRepository(client *firestore.Client) repository.StorefrontRepository {
	return &firestoreStorefrontRepository{
		client: client,
	}
}

func (r *firestoreStorefrontRepository) Create(ctx context.Context, storefront *entity.Storefront) error {
	if storefront.ID == "" {
		doc := r.client.Collection("storefronts").NewDoc()
		storefront.ID = doc.ID
	}

	now := time.Now()
	if storefront.CreatedAt.IsZero() {
		storefront.CreatedAt = now
	}
	storefront.UpdatedAt = now

	_, err := r.client.Collection("storefronts").Doc(storefront.ID).Set(ctx, storefront)
	if err != nil {
		return errors.Internal("Failed to create storefront", err)
	}

	return nil
}

func (r *firestoreStorefrontRepository) GetByID(ctx context.Context, id string) (*entity.Storefront, error) {
	doc, err := r.client.Collection("storefronts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Storefront", err)
		}
		return nil, errors.Internal("Failed to get storefront", err)
	}

	var storefront entity.Storefront
	if err := doc.DataTo(&storefront); err != nil {
		return nil, errors.Internal("Failed to parse storefront data", err)
	}

	return &storefront, nil
}

func (r *firestoreStorefrontRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Storefront, int64, error) {
	query := r.client.Collection("storefronts").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	// Exclude soft-deleted listings.
	query = query.Where("deletedAt", "==", nil)

	if sort != "" {
		parts := strings.Split(sort, "_")
		field := parts[0]
		order := firestore.Asc
		if len(parts) > 1 && parts[1] == "desc" {
			order = firestore.Desc
		}
		query = query.OrderBy(field, order)
	} else {
		query = query.OrderBy("updatedAt", firestore.Desc)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count storefronts", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var storefronts []*entity.Storefront

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate storefronts", err)
		}

		var storefront entity.Storefront
		if err := doc.DataTo(&storefront); err != nil {
			continue
		}
		storefronts = append(storefronts, &storefront)
	}

	return storefronts, total, nil
}

// SearchByName filters in memory on a lowercase substring match. Firestore
// has no native contains query; listings per filter set stay small enough
// that this holds up.
func (r *firestoreStorefrontRepository) SearchByName(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Storefront, int64, error) {
	all, _, err := r.List(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, 0, err
	}

	needle := strings.ToLower(query)
	var matched []*entity.Storefront
	for _, storefront := range all {
		if needle == "" || strings.Contains(strings.ToLower(storefront.Name), needle) {
			matched = append(matched, storefront)
		}
	}

	total := int64(len(matched))

	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matched[start:end], total, nil
}

func (r *firestoreStorefrontRepository) ListByOwnerID(ctx context.Context, ownerID string, statusFilter string, limit, offset int) ([]*entity.Storefront, int64, error) {
	filter := map[string]interface{}{"ownerId": ownerID}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}

	return r.List(ctx, filter, "", limit, offset)
}

func (r *firestoreStorefrontRepository) Update(ctx context.Context, storefront *entity.Storefront) error {
	storefront.UpdatedAt = time.Now()

	_, err := r.client.Collection("storefronts").Doc(storefront.ID).Set(ctx, storefront)
	if err != nil {
		return errors.Internal("Failed to update storefront", err)
	}

	return nil
}

func (r *firestoreStorefrontRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()

	_, err := r.client.Collection("storefronts").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Storefront", err)
		}
		return errors.Internal("Failed to delete storefront", err)
	}

	return nil
}

func (r *firestoreStorefrontRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("storefronts").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Storefront", err)
		}
		return errors.Internal("Failed to increment views", err)
	}

	return nil
}
