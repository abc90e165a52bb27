package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"nuptio/internal/domain/entity"
)

type mockConversationRepo struct {
	mock.Mock
}

func (m *mockConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *mockConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockConversationRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockConversationRepo) GetByUserAndStorefront(ctx context.Context, userID, storefrontID string) (*entity.Conversation, error) {
	args := m.Called(ctx, userID, storefrontID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Conversation), args.Get(1).(int64), args.Error(2)
}

func (m *mockConversationRepo) ListByStorefrontID(ctx context.Context, storefrontID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	args := m.Called(ctx, storefrontID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Conversation), args.Get(1).(int64), args.Error(2)
}

func (m *mockConversationRepo) SetLastMessage(ctx context.Context, id string, last entity.LastMessage) error {
	args := m.Called(ctx, id, last)
	return args.Error(0)
}

func (m *mockConversationRepo) IncrementUnread(ctx context.Context, id string, side string, delta int) error {
	args := m.Called(ctx, id, side, delta)
	return args.Error(0)
}

func (m *mockConversationRepo) ResetUnread(ctx context.Context, id string, side string) error {
	args := m.Called(ctx, id, side)
	return args.Error(0)
}

func (m *mockConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Message), args.Get(1).(int64), args.Error(2)
}

type mockStorefrontRepo struct {
	mock.Mock
}

func (m *mockStorefrontRepo) Create(ctx context.Context, storefront *entity.Storefront) error {
	args := m.Called(ctx, storefront)
	return args.Error(0)
}

func (m *mockStorefrontRepo) GetByID(ctx context.Context, id string) (*entity.Storefront, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Storefront), args.Error(1)
}

func (m *mockStorefrontRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Storefront, int64, error) {
	args := m.Called(ctx, filter, sort, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Storefront), args.Get(1).(int64), args.Error(2)
}

func (m *mockStorefrontRepo) SearchByName(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Storefront, int64, error) {
	args := m.Called(ctx, query, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Storefront), args.Get(1).(int64), args.Error(2)
}

func (m *mockStorefrontRepo) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Storefront, int64, error) {
	args := m.Called(ctx, ownerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Storefront), args.Get(1).(int64), args.Error(2)
}

func (m *mockStorefrontRepo) Update(ctx context.Context, storefront *entity.Storefront) error {
	args := m.Called(ctx, storefront)
	return args.Error(0)
}

func (m *mockStorefrontRepo) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStorefrontRepo) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockFavoriteRepo struct {
	mock.Mock
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, storefrontID string) (*entity.Favorite, error) {
	args := m.Called(ctx, userID, storefrontID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Favorite), args.Error(1)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, storefrontID string) error {
	args := m.Called(ctx, userID, storefrontID)
	return args.Error(0)
}

func (m *mockFavoriteRepo) IsFavorite(ctx context.Context, userID, storefrontID string) (bool, error) {
	args := m.Called(ctx, userID, storefrontID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.FavoriteWithStorefront, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.FavoriteWithStorefront), args.Get(1).(int64), args.Error(2)
}

func (m *mockFavoriteRepo) Count(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// allowAllLimiter satisfies RateLimiter without any throttling.
type allowAllLimiter struct{}

func (allowAllLimiter) Allow(userID, action string) (bool, time.Duration) {
	return true, 0
}

// denyLimiter refuses everything.
type denyLimiter struct{}

func (denyLimiter) Allow(userID, action string) (bool, time.Duration) {
	return false, 30 * time.Second
}
