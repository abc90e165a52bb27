package usecase

import (
	"context"
	"io"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

// MediaUseCase handles storefront media: gallery uploads to blob storage
// with a metadata record per object.
type MediaUseCase struct {
	fileMetadataRepo repository.FileMetadataRepository
	storefrontRepo   repository.StorefrontRepository
	storage          StorageClient
}

func NewMediaUseCase(
	fileMetadataRepo repository.FileMetadataRepository,
	storefrontRepo repository.StorefrontRepository,
	storage StorageClient,
) *MediaUseCase {
	return &MediaUseCase{
		fileMetadataRepo: fileMetadataRepo,
		storefrontRepo:   storefrontRepo,
		storage:          storage,
	}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type UploadInput struct {
	StorefrontID string
	ContentType  string
	Size         int64
	File         io.Reader
}

const maxUploadSize = 10 << 20 // 10 MiB

func (uc *MediaUseCase) UploadStorefrontImage(ctx context.Context, ownerID string, input UploadInput) (*entity.FileMetadata, error) {
	if !allowedImageTypes[input.ContentType] {
		return nil, errors.BadRequest("Unsupported file type", nil)
	}
	if input.Size > maxUploadSize {
		return nil, errors.BadRequest("File too large", nil)
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, input.StorefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this storefront", nil)
	}

	url, err := uc.storage.UploadFile(ctx, input.File, input.ContentType, "storefronts/"+storefront.ID, true)
	if err != nil {
		return nil, errors.Internal("Failed to upload file", err)
	}

	metadata := &entity.FileMetadata{
		OwnerID:      ownerID,
		StorefrontID: storefront.ID,
		URL:          url,
		ContentType:  input.ContentType,
		Size:         input.Size,
	}
	if err := uc.fileMetadataRepo.Create(ctx, metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}

// SignedUpload hands the client a direct-to-bucket PUT URL for big files.
func (uc *MediaUseCase) SignedUpload(ctx context.Context, ownerID, storefrontID, contentType string) (uploadURL, publicURL string, err error) {
	if !allowedImageTypes[contentType] {
		return "", "", errors.BadRequest("Unsupported file type", nil)
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, storefrontID)
	if err != nil {
		return "", "", errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != ownerID {
		return "", "", errors.Forbidden("You don't own this storefront", nil)
	}

	return uc.storage.GenerateSignedUploadURL(ctx, contentType, "storefronts/"+storefront.ID, true)
}

func (uc *MediaUseCase) ListStorefrontFiles(ctx context.Context, ownerID, storefrontID string) ([]*entity.FileMetadata, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, storefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this storefront", nil)
	}

	return uc.fileMetadataRepo.ListByStorefrontID(ctx, storefrontID)
}

func (uc *MediaUseCase) Delete(ctx context.Context, ownerID, fileID string) error {
	metadata, err := uc.fileMetadataRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if metadata.OwnerID != ownerID {
		return errors.NotFound("File", nil)
	}

	if err := uc.storage.DeleteFile(ctx, metadata.URL); err != nil {
		return errors.Internal("Failed to delete file from storage", err)
	}

	return uc.fileMetadataRepo.Delete(ctx, fileID)
}
