package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	ws "nuptio/internal/infrastructure/websocket"
	"nuptio/pkg/errors"
)

// ConversationUseCase is the REST side of messaging: listing history,
// starting conversations, read marks, and provider replies. Live buyer
// sends travel over the socket relay instead.
type ConversationUseCase struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	storefrontRepo   repository.StorefrontRepository
	wsManager        *ws.Manager
	rateLimiter      RateLimiter
}

// RateLimiter is the per-user action limiter the usecase consults before
// opening conversations.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

func NewConversationUseCase(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	storefrontRepo repository.StorefrontRepository,
	wsManager *ws.Manager,
	rateLimiter RateLimiter,
) *ConversationUseCase {
	return &ConversationUseCase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		storefrontRepo:   storefrontRepo,
		wsManager:        wsManager,
		rateLimiter:      rateLimiter,
	}
}

type StartConversationInput struct {
	StorefrontID   string `json:"storefront_id"`
	InitialMessage string `json:"initial_message"`
}

type ConversationResponse struct {
	*entity.Conversation
	Storefront *entity.Storefront `json:"storefront,omitempty"`
}

// StartConversation finds or creates the buyer<->storefront conversation.
// An optional initial message goes through the same persist/fan-out steps
// as a socket send.
func (uc *ConversationUseCase) StartConversation(ctx context.Context, userID string, input StartConversationInput) (*ConversationResponse, error) {
	if allowed, wait := uc.rateLimiter.Allow(userID, "start_conversation"); !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another conversation", wait)
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, input.StorefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.DeletedAt != nil || storefront.Status != "published" {
		return nil, errors.NotFound("Storefront", nil)
	}
	if storefront.OwnerID == userID {
		return nil, errors.BadRequest("Cannot start a conversation with your own storefront", nil)
	}

	conversation, err := uc.conversationRepo.GetByUserAndStorefront(ctx, userID, storefront.ID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		conversation = &entity.Conversation{
			UserID:       userID,
			StorefrontID: storefront.ID,
		}
		if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(input.InitialMessage) != "" {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, errors.NotFound("User", err)
		}
		if err := uc.relayMessage(ctx, conversation, storefront, entity.SenderUser, userID, user.Username, input.InitialMessage); err != nil {
			return nil, err
		}
	}

	return &ConversationResponse{Conversation: conversation, Storefront: storefront}, nil
}

func (uc *ConversationUseCase) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*ConversationResponse, int64, error) {
	conversations, total, err := uc.conversationRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		resp := &ConversationResponse{Conversation: conversation}
		if storefront, err := uc.storefrontRepo.GetByID(ctx, conversation.StorefrontID); err == nil {
			resp.Storefront = storefront
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

// ListStorefrontConversations is the provider inbox for one storefront.
func (uc *ConversationUseCase) ListStorefrontConversations(ctx context.Context, providerID, storefrontID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, storefrontID)
	if err != nil {
		return nil, 0, errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != providerID {
		return nil, 0, errors.Forbidden("You don't own this storefront", nil)
	}

	return uc.conversationRepo.ListByStorefrontID(ctx, storefrontID, limit, offset)
}

func (uc *ConversationUseCase) ListMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.authorizedConversation(ctx, userID, conversationID); err != nil {
		return nil, 0, err
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkRead zeroes the caller's side of the unread counter.
func (uc *ConversationUseCase) MarkRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.authorizedConversation(ctx, userID, conversationID)
	if err != nil {
		return err
	}

	side := entity.SenderUser
	if conversation.UserID != userID {
		side = entity.SenderProvider
	}

	return uc.conversationRepo.ResetUnread(ctx, conversationID, side)
}

type ProviderReplyInput struct {
	Content     string                 `json:"content"`
	MessageType string                 `json:"message_type"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// SendProviderReply is how a vendor answers: it persists a provider-side
// message, bumps the buyer's unread counter and pushes the message into the
// conversation room plus the buyer's own room for inbox badges.
func (uc *ConversationUseCase) SendProviderReply(ctx context.Context, providerID, conversationID string, input ProviderReplyInput) (*entity.Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, errors.NotFound("Conversation", err)
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, conversation.StorefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != providerID {
		return nil, errors.NotFound("Conversation", nil)
	}

	messageType := input.MessageType
	if messageType == "" {
		messageType = "text"
	}

	now := time.Now()
	message := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conversation.ID,
		SenderType:     entity.SenderProvider,
		SenderID:       providerID,
		Content:        input.Content,
		Type:           messageType,
		Metadata:       input.Metadata,
		DeliveredAt:    now,
		CreatedAt:      now,
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.conversationRepo.SetLastMessage(ctx, conversation.ID, entity.LastMessage{
		Content:    message.Content,
		Timestamp:  now,
		SenderType: entity.SenderProvider,
	}); err != nil {
		log.Printf("Failed to update last message for conversation %s: %v", conversation.ID, err)
	}

	if err := uc.conversationRepo.IncrementUnread(ctx, conversation.ID, entity.SenderUser, 1); err != nil {
		log.Printf("Failed to bump unread count for conversation %s: %v", conversation.ID, err)
	}

	event := ws.NewMessageData{Message: message, SenderName: storefront.Name}
	uc.wsManager.BroadcastToRoom(ws.ConversationRoom(conversation.ID), ws.NewOutboundEvent(ws.EventNewMessage, event))
	uc.wsManager.BroadcastToRoom(ws.UserRoom(conversation.UserID), ws.NewOutboundEvent(ws.EventNewMessage, event))

	return message, nil
}

// relayMessage mirrors the socket relay's persist/update/fan-out sequence
// for messages that originate over REST.
func (uc *ConversationUseCase) relayMessage(ctx context.Context, conversation *entity.Conversation, storefront *entity.Storefront, senderType, senderID, senderName, content string) error {
	now := time.Now()
	message := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conversation.ID,
		SenderType:     senderType,
		SenderID:       senderID,
		Content:        content,
		Type:           "text",
		DeliveredAt:    now,
		CreatedAt:      now,
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return err
	}

	if err := uc.conversationRepo.SetLastMessage(ctx, conversation.ID, entity.LastMessage{
		Content:    content,
		Timestamp:  now,
		SenderType: senderType,
	}); err != nil {
		return err
	}

	unreadSide := entity.SenderProvider
	if senderType == entity.SenderProvider {
		unreadSide = entity.SenderUser
	}
	if err := uc.conversationRepo.IncrementUnread(ctx, conversation.ID, unreadSide, 1); err != nil {
		return err
	}

	uc.wsManager.BroadcastToRoom(ws.ConversationRoom(conversation.ID), ws.NewOutboundEvent(ws.EventNewMessage, ws.NewMessageData{
		Message:    message,
		SenderName: senderName,
	}))
	uc.wsManager.BroadcastToRoom(ws.ProviderRoom(storefront.ID), ws.NewOutboundEvent(ws.EventNewMessageNotification, ws.NewMessageNotificationData{
		ConversationID: conversation.ID,
		StorefrontName: storefront.Name,
		Content:        content,
		SenderName:     senderName,
	}))

	return nil
}

// authorizedConversation resolves a conversation the caller participates in,
// buyer or storefront owner. Anyone else sees NOT_FOUND.
func (uc *ConversationUseCase) authorizedConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, errors.NotFound("Conversation", err)
	}

	if conversation.UserID == userID {
		return conversation, nil
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, conversation.StorefrontID)
	if err == nil && storefront.OwnerID == userID {
		return conversation, nil
	}

	return nil, errors.NotFound("Conversation", nil)
}
