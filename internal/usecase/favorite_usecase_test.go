package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nuptio/internal/domain/entity"
	"nuptio/pkg/errors"
)

func TestFavoriteAdd(t *testing.T) {
	favorites := new(mockFavoriteRepo)
	storefronts := new(mockStorefrontRepo)
	uc := NewFavoriteUseCase(favorites, storefronts)

	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:     "s1",
		Status: "published",
	}, nil)
	favorites.On("Add", mock.Anything, "u1", "s1").Return(&entity.Favorite{
		ID:           "f1",
		UserID:       "u1",
		StorefrontID: "s1",
	}, nil)

	favorite, err := uc.Add(context.Background(), "u1", "s1")

	require.NoError(t, err)
	assert.Equal(t, "u1", favorite.UserID)
	assert.Equal(t, "s1", favorite.StorefrontID)
}

func TestFavoriteAddUnpublishedStorefront(t *testing.T) {
	favorites := new(mockFavoriteRepo)
	storefronts := new(mockStorefrontRepo)
	uc := NewFavoriteUseCase(favorites, storefronts)

	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:     "s1",
		Status: "draft",
	}, nil)

	_, err := uc.Add(context.Background(), "u1", "s1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	favorites.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestFavoriteRemove(t *testing.T) {
	favorites := new(mockFavoriteRepo)
	storefronts := new(mockStorefrontRepo)
	uc := NewFavoriteUseCase(favorites, storefronts)

	favorites.On("Remove", mock.Anything, "u1", "s1").Return(nil)

	require.NoError(t, uc.Remove(context.Background(), "u1", "s1"))
	favorites.AssertCalled(t, "Remove", mock.Anything, "u1", "s1")
}
