package usecase

import (
	"context"
	"strings"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

func (uc *CategoryUseCase) Create(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Name)
	}

	if existing, err := uc.categoryRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, errors.Conflict("Category slug already exists", nil)
	}

	category := &entity.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Icon:        input.Icon,
		Status:      "active",
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

func (uc *CategoryUseCase) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return uc.categoryRepo.GetBySlug(ctx, slug)
}

func (uc *CategoryUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Category, int64, error) {
	return uc.categoryRepo.List(ctx, limit, offset)
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, input CategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Slug != "" {
		category.Slug = input.Slug
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(ctx, id)
}
