package entity

import "time"

// Sender roles on a conversation. A conversation always pairs one buyer
// ("user") with one storefront ("provider").
const (
	SenderUser     = "user"
	SenderProvider = "provider"
)

type LastMessage struct {
	Content    string    `json:"content" firestore:"content"`
	Timestamp  time.Time `json:"timestamp" firestore:"timestamp"`
	SenderType string    `json:"sender_type" firestore:"senderType"`
}

// UnreadCount is split by role: User counts messages the buyer has not
// seen, Provider counts messages the vendor has not seen. Values never go
// negative; increments are atomic server-side field increments.
type UnreadCount struct {
	User     int `json:"user" firestore:"user"`
	Provider int `json:"provider" firestore:"provider"`
}

// Conversation is a buyer<->storefront dialogue. It is created implicitly
// on first message send (or explicitly via the start-conversation action)
// and is never hard-deleted.
type Conversation struct {
	ID           string       `json:"id" firestore:"id"`
	UserID       string       `json:"user_id" firestore:"userId"`
	StorefrontID string       `json:"storefront_id" firestore:"storefrontId"`
	LastMessage  *LastMessage `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	UnreadCount  UnreadCount  `json:"unread_count" firestore:"unreadCount"`
	CreatedAt    time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time    `json:"updated_at" firestore:"updatedAt"`
}
