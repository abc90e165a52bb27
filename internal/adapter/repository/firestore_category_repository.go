package repository

import (
	"context"
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

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.client.Collection("categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to create category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.client.Collection("categories").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	return &category, nil
}

func (r *firestoreCategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	query := r.client.Collection("categories").Where("slug", "==", slug).Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Category", nil)
		}
		return nil, errors.Internal("Failed to query category by slug", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	return &category, nil
}

func (r *firestoreCategoryRepository) List(ctx context.Context, limit, offset int) ([]*entity.Category, int64, error) {
	query := r.client.Collection("categories").OrderBy("name", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch categories", err)
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

	var categories []*entity.Category
	for i := start; i < end; i++ {
		var category entity.Category
		if err := allDocs[i].DataTo(&category); err != nil {
			continue
		}
		categories = append(categories, &category)
	}

	return categories, total, nil
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()

	_, err := r.client.Collection("categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to update category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("categories").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete category", err)
	}

	return nil
}
