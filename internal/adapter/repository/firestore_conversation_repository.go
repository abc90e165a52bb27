package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	_, err := r.client.Collection("conversations").Doc(conversation.ID).Set(ctx, conversation)
	if err != nil {
		return errors.Internal("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

func (r *firestoreConversationRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	conversation, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Ownership mismatch reports NOT_FOUND so non-owners cannot probe
	// which conversation ids exist.
	if conversation.UserID != userID {
		return nil, errors.NotFound("Conversation", nil)
	}

	return conversation, nil
}

func (r *firestoreConversationRepository) GetByUserAndStorefront(ctx context.Context, userID, storefrontID string) (*entity.Conversation, error) {
	query := r.client.Collection("conversations").
		Where("userId", "==", userID).
		Where("storefrontId", "==", storefrontID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.Internal("Failed to query conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

func (r *firestoreConversationRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	query := r.client.Collection("conversations").
		Where("userId", "==", userID).
		OrderBy("updatedAt", firestore.Desc)

	return r.listConversations(ctx, query, limit, offset)
}

func (r *firestoreConversationRepository) ListByStorefrontID(ctx context.Context, storefrontID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	query := r.client.Collection("conversations").
		Where("storefrontId", "==", storefrontID).
		OrderBy("updatedAt", firestore.Desc)

	return r.listConversations(ctx, query, limit, offset)
}

func (r *firestoreConversationRepository) listConversations(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Conversation, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch conversations", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var conversations []*entity.Conversation
	for i := start; i < end; i++ {
		var conversation entity.Conversation
		if err := allDocs[i].DataTo(&conversation); err != nil {
			log.Printf("Error parsing conversation data: %v", err)
			continue
		}
		conversations = append(conversations, &conversation)
	}

	return conversations, total, nil
}

func (r *firestoreConversationRepository) SetLastMessage(ctx context.Context, id string, last entity.LastMessage) error {
	_, err := r.client.Collection("conversations").Doc(id).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: last},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to update last message", err)
	}

	return nil
}

// IncrementUnread uses a server-side field increment instead of
// read-modify-write, so concurrent sends into the same conversation
// cannot lose updates.
func (r *firestoreConversationRepository) IncrementUnread(ctx context.Context, id string, side string, delta int) error {
	if side != entity.SenderUser && side != entity.SenderProvider {
		return errors.BadRequest("Unknown unread counter side", nil)
	}

	_, err := r.client.Collection("conversations").Doc(id).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + side, Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to increment unread count", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ResetUnread(ctx context.Context, id string, side string) error {
	if side != entity.SenderUser && side != entity.SenderProvider {
		return errors.BadRequest("Unknown unread counter side", nil)
	}

	_, err := r.client.Collection("conversations").Doc(id).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + side, Value: 0},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to reset unread count", err)
	}

	return nil
}

func (r *firestoreConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("conversations").Doc(message.ConversationID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while counting messages for conversation %s: %v", conversationID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for conversation %s: %v", conversationID, err)
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for conversation %s: %v", conversationID, err)
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, total, nil
}
