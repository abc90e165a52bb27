package repository

import (
	"context"

	"nuptio/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// GetByIDAndUser returns the conversation only when it is owned by
	// userID; a mismatch reports NOT_FOUND, not FORBIDDEN, so callers can
	// keep the "Conversation not found" contract without leaking existence.
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Conversation, error)
	GetByUserAndStorefront(ctx context.Context, userID, storefrontID string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)
	ListByStorefrontID(ctx context.Context, storefrontID string, limit, offset int) ([]*entity.Conversation, int64, error)

	// SetLastMessage updates the denormalized last-message snapshot.
	SetLastMessage(ctx context.Context, id string, last entity.LastMessage) error
	// IncrementUnread atomically bumps the unread counter for the given
	// side ("user" or "provider") by delta via a server-side field
	// increment, safe under concurrent sends.
	IncrementUnread(ctx context.Context, id string, side string, delta int) error
	// ResetUnread zeroes the unread counter for the given side.
	ResetUnread(ctx context.Context, id string, side string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
}
