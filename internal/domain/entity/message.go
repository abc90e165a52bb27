package entity

import "time"

// Message is a single chat entry. Immutable once created; always belongs
// to exactly one conversation.
type Message struct {
	ID             string                 `json:"id" firestore:"id"`
	ConversationID string                 `json:"conversation_id" firestore:"conversationId"`
	SenderType     string                 `json:"sender_type" firestore:"senderType"` // "user" or "provider"
	SenderID       string                 `json:"sender_id" firestore:"senderId"`
	Content        string                 `json:"content" firestore:"content"`
	Type           string                 `json:"type,omitempty" firestore:"type,omitempty"` // "text", "quote", "system"
	Metadata       map[string]interface{} `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	DeliveredAt    time.Time              `json:"delivered_at" firestore:"deliveredAt"`
	CreatedAt      time.Time              `json:"created_at" firestore:"createdAt"`
}
