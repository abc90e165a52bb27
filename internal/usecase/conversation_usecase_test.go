package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nuptio/internal/domain/entity"
	ws "nuptio/internal/infrastructure/websocket"
	"nuptio/pkg/errors"
)

func newConversationFixture(limiter RateLimiter) (*ConversationUseCase, *mockConversationRepo, *mockStorefrontRepo, *mockUserRepo) {
	conversations := new(mockConversationRepo)
	storefronts := new(mockStorefrontRepo)
	users := new(mockUserRepo)
	manager := ws.NewManager(nil, nil, nil, nil, nil)

	uc := NewConversationUseCase(conversations, users, storefronts, manager, limiter)
	return uc, conversations, storefronts, users
}

func TestStartConversationCreatesWhenMissing(t *testing.T) {
	uc, conversations, storefronts, _ := newConversationFixture(allowAllLimiter{})

	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:      "s1",
		OwnerID: "p1",
		Status:  "published",
	}, nil)
	conversations.On("GetByUserAndStorefront", mock.Anything, "u1", "s1").Return(nil, errors.NotFound("Conversation", nil))
	conversations.On("Create", mock.Anything, mock.AnythingOfType("*entity.Conversation")).Return(nil)

	resp, err := uc.StartConversation(context.Background(), "u1", StartConversationInput{StorefrontID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, "u1", resp.Conversation.UserID)
	assert.Equal(t, "s1", resp.Conversation.StorefrontID)
	conversations.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entity.Conversation"))
}

func TestStartConversationReusesExisting(t *testing.T) {
	uc, conversations, storefronts, _ := newConversationFixture(allowAllLimiter{})

	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:      "s1",
		OwnerID: "p1",
		Status:  "published",
	}, nil)
	existing := &entity.Conversation{ID: "c1", UserID: "u1", StorefrontID: "s1"}
	conversations.On("GetByUserAndStorefront", mock.Anything, "u1", "s1").Return(existing, nil)

	resp, err := uc.StartConversation(context.Background(), "u1", StartConversationInput{StorefrontID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, "c1", resp.Conversation.ID)
	conversations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStartConversationRateLimited(t *testing.T) {
	uc, conversations, _, _ := newConversationFixture(denyLimiter{})

	_, err := uc.StartConversation(context.Background(), "u1", StartConversationInput{StorefrontID: "s1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
	conversations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStartConversationWithOwnStorefront(t *testing.T) {
	uc, _, storefronts, _ := newConversationFixture(allowAllLimiter{})

	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:      "s1",
		OwnerID: "u1",
		Status:  "published",
	}, nil)

	_, err := uc.StartConversation(context.Background(), "u1", StartConversationInput{StorefrontID: "s1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendProviderReply(t *testing.T) {
	uc, conversations, storefronts, _ := newConversationFixture(allowAllLimiter{})

	conversations.On("GetByID", mock.Anything, "c1").Return(&entity.Conversation{
		ID:           "c1",
		UserID:       "u1",
		StorefrontID: "s1",
	}, nil)
	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:      "s1",
		OwnerID: "p1",
		Name:    "Rosewood Manor",
	}, nil)
	conversations.On("CreateMessage", mock.Anything, mock.AnythingOfType("*entity.Message")).Return(nil)
	conversations.On("SetLastMessage", mock.Anything, "c1", mock.AnythingOfType("entity.LastMessage")).Return(nil)
	conversations.On("IncrementUnread", mock.Anything, "c1", entity.SenderUser, 1).Return(nil)

	message, err := uc.SendProviderReply(context.Background(), "p1", "c1", ProviderReplyInput{
		Content: "We are available on that date.",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SenderProvider, message.SenderType)
	assert.Equal(t, "p1", message.SenderID)
	assert.Equal(t, "text", message.Type)
	conversations.AssertCalled(t, "IncrementUnread", mock.Anything, "c1", entity.SenderUser, 1)
}

func TestSendProviderReplyByNonOwner(t *testing.T) {
	uc, conversations, storefronts, _ := newConversationFixture(allowAllLimiter{})

	conversations.On("GetByID", mock.Anything, "c1").Return(&entity.Conversation{
		ID:           "c1",
		UserID:       "u1",
		StorefrontID: "s1",
	}, nil)
	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:      "s1",
		OwnerID: "p1",
	}, nil)

	_, err := uc.SendProviderReply(context.Background(), "someone-else", "c1", ProviderReplyInput{
		Content: "hello",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	conversations.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestMarkReadResetsCallerSide(t *testing.T) {
	uc, conversations, storefronts, _ := newConversationFixture(allowAllLimiter{})

	conversation := &entity.Conversation{ID: "c1", UserID: "u1", StorefrontID: "s1"}
	conversations.On("GetByID", mock.Anything, "c1").Return(conversation, nil)
	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:      "s1",
		OwnerID: "p1",
	}, nil)

	// Buyer resets the user side.
	conversations.On("ResetUnread", mock.Anything, "c1", entity.SenderUser).Return(nil).Once()
	require.NoError(t, uc.MarkRead(context.Background(), "u1", "c1"))
	conversations.AssertCalled(t, "ResetUnread", mock.Anything, "c1", entity.SenderUser)

	// Storefront owner resets the provider side.
	conversations.On("ResetUnread", mock.Anything, "c1", entity.SenderProvider).Return(nil).Once()
	require.NoError(t, uc.MarkRead(context.Background(), "p1", "c1"))
	conversations.AssertCalled(t, "ResetUnread", mock.Anything, "c1", entity.SenderProvider)
}

func TestListMessagesByStranger(t *testing.T) {
	uc, conversations, storefronts, _ := newConversationFixture(allowAllLimiter{})

	conversations.On("GetByID", mock.Anything, "c1").Return(&entity.Conversation{
		ID:           "c1",
		UserID:       "u1",
		StorefrontID: "s1",
	}, nil)
	storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:      "s1",
		OwnerID: "p1",
	}, nil)

	_, _, err := uc.ListMessages(context.Background(), "stranger", "c1", 50, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	conversations.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
