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
	"nuptio/pkg/logger"
)

type firestoreFileMetadataRepository struct {
	client *firestore.Client
}

func NewFirestoreFileMetadataRepository(client *firestore.Client) repository.FileMetadataRepository {
	return &firestoreFileMetadataRepository{
		client: client,
	}
}

func (r *firestoreFileMetadataRepository) Create(ctx context.Context, metadata *entity.FileMetadata) error {
	if metadata.ID == "" {
		metadata.ID = uuid.New().String()
	}
	if metadata.CreatedAt.IsZero() {
		metadata.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("fileMetadata").Doc(metadata.ID).Set(ctx, metadata)
	if err != nil {
		logger.Error("Failed to create file metadata %s: %v", metadata.ID, err)
		return errors.Internal("Failed to create file metadata", err)
	}

	return nil
}

func (r *firestoreFileMetadataRepository) GetByID(ctx context.Context, id string) (*entity.FileMetadata, error) {
	doc, err := r.client.Collection("fileMetadata").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("File", err)
		}
		return nil, errors.Internal("Failed to get file metadata", err)
	}

	var metadata entity.FileMetadata
	if err := doc.DataTo(&metadata); err != nil {
		return nil, errors.Internal("Failed to parse file metadata", err)
	}

	return &metadata, nil
}

func (r *firestoreFileMetadataRepository) ListByStorefrontID(ctx context.Context, storefrontID string) ([]*entity.FileMetadata, error) {
	query := r.client.Collection("fileMetadata").
		Where("storefrontId", "==", storefrontID).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var files []*entity.FileMetadata

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate file metadata", err)
		}

		var metadata entity.FileMetadata
		if err := doc.DataTo(&metadata); err != nil {
			continue
		}
		files = append(files, &metadata)
	}

	return files, nil
}

func (r *firestoreFileMetadataRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("fileMetadata").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete file metadata", err)
	}

	return nil
}
