package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type StorefrontUseCase struct {
	storefrontRepo    repository.StorefrontRepository
	categoryRepo      repository.CategoryRepository
	userRepo          repository.UserRepository
	searchHistoryRepo repository.SearchHistoryRepository
}

func NewStorefrontUseCase(
	storefrontRepo repository.StorefrontRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	searchHistoryRepo repository.SearchHistoryRepository,
) *StorefrontUseCase {
	return &StorefrontUseCase{
		storefrontRepo:    storefrontRepo,
		categoryRepo:      categoryRepo,
		userRepo:          userRepo,
		searchHistoryRepo: searchHistoryRepo,
	}
}

type StorefrontInput struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Website     string  `json:"website"`
	Capacity    int     `json:"capacity"`
	PriceMin    float64 `json:"price_min"`
	PriceMax    float64 `json:"price_max"`
	Status      string  `json:"status"`
}

type StorefrontImageInput struct {
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

type SearchStorefrontsInput struct {
	Query      string
	CategoryID string
	City       string
	Featured   bool
	Sort       string
	Limit      int
	Offset     int
}

func (uc *StorefrontUseCase) Create(ctx context.Context, ownerID string, input StorefrontInput, images []StorefrontImageInput) (*entity.Storefront, error) {
	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, errors.BadRequest("Invalid category", err)
	}

	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid owner", err)
	}
	if owner.Role != "provider" && owner.Role != "admin" {
		return nil, errors.Forbidden("Only provider accounts can create storefronts", nil)
	}

	if input.PriceMin < 0 || (input.PriceMax > 0 && input.PriceMax < input.PriceMin) {
		return nil, errors.BadRequest("Invalid price range", nil)
	}

	status := input.Status
	if status == "" {
		status = "draft"
	}
	if status != "draft" && status != "published" {
		return nil, errors.BadRequest("Invalid status", nil)
	}

	storefrontImages := make([]entity.StorefrontImage, len(images))
	for i, img := range images {
		storefrontImages[i] = entity.StorefrontImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}

	storefront := &entity.Storefront{
		OwnerID:     ownerID,
		CategoryID:  category.ID,
		Name:        input.Name,
		Description: input.Description,
		City:        input.City,
		Region:      input.Region,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		Website:     input.Website,
		Capacity:    input.Capacity,
		PriceMin:    input.PriceMin,
		PriceMax:    input.PriceMax,
		Images:      storefrontImages,
		Status:      status,
	}

	if err := uc.storefrontRepo.Create(ctx, storefront); err != nil {
		return nil, err
	}

	return storefront, nil
}

// GetByID counts a public view unless the viewer owns the listing.
func (uc *StorefrontUseCase) GetByID(ctx context.Context, id, viewerID string) (*entity.Storefront, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if storefront.DeletedAt != nil {
		return nil, errors.NotFound("Storefront", nil)
	}

	if viewerID != storefront.OwnerID {
		if err := uc.storefrontRepo.IncrementViews(ctx, id); err != nil {
			log.Printf("Failed to increment views for storefront %s: %v", id, err)
		}
	}

	return storefront, nil
}

// Search lists published storefronts and records the query in the caller's
// search history when they are signed in.
func (uc *StorefrontUseCase) Search(ctx context.Context, viewerID string, input SearchStorefrontsInput) ([]*entity.Storefront, int64, error) {
	filter := map[string]interface{}{
		"status": "published",
	}
	if input.CategoryID != "" {
		filter["categoryId"] = input.CategoryID
	}
	if input.City != "" {
		filter["city"] = input.City
	}
	if input.Featured {
		filter["featured"] = true
	}

	var (
		storefronts []*entity.Storefront
		total       int64
		err         error
	)
	if input.Query != "" {
		storefronts, total, err = uc.storefrontRepo.SearchByName(ctx, input.Query, filter, input.Limit, input.Offset)
	} else {
		storefronts, total, err = uc.storefrontRepo.List(ctx, filter, input.Sort, input.Limit, input.Offset)
	}
	if err != nil {
		return nil, 0, err
	}

	if viewerID != "" && (input.Query != "" || input.CategoryID != "" || input.City != "") {
		filters := map[string]string{}
		if input.CategoryID != "" {
			filters["category_id"] = input.CategoryID
		}
		if input.City != "" {
			filters["city"] = input.City
		}
		entry := &entity.SearchEntry{
			UserID:     viewerID,
			Query:      input.Query,
			Filters:    filters,
			ResultHits: total,
		}
		if err := uc.searchHistoryRepo.Record(ctx, entry); err != nil {
			log.Printf("Failed to record search history for %s: %v", viewerID, err)
		}
	}

	return storefronts, total, nil
}

func (uc *StorefrontUseCase) ListMine(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.Storefront, int64, error) {
	return uc.storefrontRepo.ListByOwnerID(ctx, ownerID, status, limit, offset)
}

func (uc *StorefrontUseCase) Update(ctx context.Context, id, ownerID string, input StorefrontInput, images []StorefrontImageInput) (*entity.Storefront, error) {
	storefront, err := uc.ownedStorefront(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != "" && input.CategoryID != storefront.CategoryID {
		if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, errors.BadRequest("Invalid category", err)
		}
		storefront.CategoryID = input.CategoryID
	}

	if input.Name != "" {
		storefront.Name = input.Name
	}
	if input.Description != "" {
		storefront.Description = input.Description
	}
	if input.City != "" {
		storefront.City = input.City
	}
	if input.Region != "" {
		storefront.Region = input.Region
	}
	if input.Address != "" {
		storefront.Address = input.Address
	}
	if input.Phone != "" {
		storefront.Phone = input.Phone
	}
	if input.Email != "" {
		storefront.Email = input.Email
	}
	if input.Website != "" {
		storefront.Website = input.Website
	}
	if input.Capacity > 0 {
		storefront.Capacity = input.Capacity
	}
	if input.PriceMin > 0 {
		storefront.PriceMin = input.PriceMin
	}
	if input.PriceMax > 0 {
		storefront.PriceMax = input.PriceMax
	}
	if input.Status != "" {
		if input.Status != "draft" && input.Status != "published" {
			return nil, errors.BadRequest("Invalid status", nil)
		}
		storefront.Status = input.Status
	}

	if images != nil {
		storefrontImages := make([]entity.StorefrontImage, len(images))
		for i, img := range images {
			storefrontImages[i] = entity.StorefrontImage{
				ID:           uuid.New().String(),
				URL:          img.URL,
				DisplayOrder: img.DisplayOrder,
			}
		}
		storefront.Images = storefrontImages
	}

	if err := uc.storefrontRepo.Update(ctx, storefront); err != nil {
		return nil, err
	}

	return storefront, nil
}

func (uc *StorefrontUseCase) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := uc.ownedStorefront(ctx, id, ownerID); err != nil {
		return err
	}
	return uc.storefrontRepo.SoftDelete(ctx, id)
}

// SetFeatured is an admin-only flag flip.
func (uc *StorefrontUseCase) SetFeatured(ctx context.Context, id string, featured bool) (*entity.Storefront, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	storefront.Featured = featured
	if err := uc.storefrontRepo.Update(ctx, storefront); err != nil {
		return nil, err
	}

	return storefront, nil
}

// SetStatus is the admin moderation hook ("published"/"suspended").
func (uc *StorefrontUseCase) SetStatus(ctx context.Context, id, status string) (*entity.Storefront, error) {
	if status != "published" && status != "suspended" {
		return nil, errors.BadRequest("Invalid status", nil)
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	storefront.Status = status
	if err := uc.storefrontRepo.Update(ctx, storefront); err != nil {
		return nil, err
	}

	return storefront, nil
}

func (uc *StorefrontUseCase) ownedStorefront(ctx context.Context, id, ownerID string) (*entity.Storefront, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if storefront.DeletedAt != nil {
		return nil, errors.NotFound("Storefront", nil)
	}
	if storefront.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this storefront", nil)
	}
	return storefront, nil
}
