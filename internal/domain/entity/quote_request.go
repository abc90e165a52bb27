package entity

import "time"

// QuoteRequest is a buyer's request for pricing from a storefront.
// Status flow: pending -> quoted | declined. A request may open a
// conversation so follow-up happens over chat.
type QuoteRequest struct {
	ID           string `json:"id" firestore:"id"`
	UserID       string `json:"user_id" firestore:"userId"`
	StorefrontID string `json:"storefront_id" firestore:"storefrontId"`

	EventDate  *time.Time `json:"event_date,omitempty" firestore:"eventDate,omitempty"`
	GuestCount int        `json:"guest_count,omitempty" firestore:"guestCount,omitempty"`
	Budget     float64    `json:"budget,omitempty" firestore:"budget,omitempty"`
	Message    string     `json:"message" firestore:"message"`

	Status         string     `json:"status" firestore:"status"` // "pending", "quoted", "declined"
	QuotedAmount   float64    `json:"quoted_amount,omitempty" firestore:"quotedAmount,omitempty"`
	ProviderReply  string     `json:"provider_reply,omitempty" firestore:"providerReply,omitempty"`
	RespondedAt    *time.Time `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty" firestore:"conversationId,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
