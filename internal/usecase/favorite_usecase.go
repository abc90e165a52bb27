package usecase

import (
	"context"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo   repository.FavoriteRepository
	storefrontRepo repository.StorefrontRepository
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	storefrontRepo repository.StorefrontRepository,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo:   favoriteRepo,
		storefrontRepo: storefrontRepo,
	}
}

func (uc *FavoriteUseCase) Add(ctx context.Context, userID, storefrontID string) (*entity.Favorite, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, storefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.DeletedAt != nil || storefront.Status != "published" {
		return nil, errors.NotFound("Storefront", nil)
	}

	return uc.favoriteRepo.Add(ctx, userID, storefrontID)
}

func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, storefrontID string) error {
	return uc.favoriteRepo.Remove(ctx, userID, storefrontID)
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, storefrontID string) (bool, error) {
	return uc.favoriteRepo.IsFavorite(ctx, userID, storefrontID)
}

func (uc *FavoriteUseCase) List(ctx context.Context, userID string, limit, offset int) ([]entity.FavoriteWithStorefront, int64, error) {
	return uc.favoriteRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *FavoriteUseCase) Count(ctx context.Context, userID string) (int64, error) {
	return uc.favoriteRepo.Count(ctx, userID)
}
