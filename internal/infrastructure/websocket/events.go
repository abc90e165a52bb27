package websocket

import (
	"encoding/json"
	"time"

	"nuptio/internal/domain/entity"
)

// Event types carried over the socket, both directions.
const (
	EventAuthenticate  = "authenticate"
	EventAuthenticated = "authenticated"
	EventAuthError     = "auth_error"

	EventJoinConversation   = "join_conversation"
	EventJoinedConversation = "joined_conversation"
	EventLeaveConversation  = "leave_conversation"

	EventSendMessage            = "send_message"
	EventNewMessage             = "new_message"
	EventNewMessageNotification = "new_message_notification"
	EventMessageSent            = "message_sent"

	EventTyping     = "typing"
	EventUserTyping = "user_typing"

	EventError = "error"
)

// Room name helpers. Every addressable scope maps to one named room.
func UserRoom(userID string) string                 { return "user:" + userID }
func ConversationRoom(conversationID string) string { return "conversation:" + conversationID }
func ProviderRoom(storefrontID string) string       { return "provider:" + storefrontID }

// Event is the wire envelope for every socket frame.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewOutboundEvent stamps an envelope for callers outside this package
// (REST paths that push into rooms).
func NewOutboundEvent(eventType string, data interface{}) Event {
	return newEvent(eventType, data)
}

func newEvent(eventType string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func (e Event) marshal() ([]byte, error) {
	return json.Marshal(e)
}

// inboundEvent defers payload decoding until the type is known.
type inboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound payloads.

type AuthenticatePayload struct {
	Token string `json:"token,omitempty"`
}

type JoinConversationPayload struct {
	ConversationID string `json:"conversation_id"`
}

type LeaveConversationPayload struct {
	ConversationID string `json:"conversation_id"`
}

type SendMessagePayload struct {
	ConversationID string                 `json:"conversation_id"`
	Content        string                 `json:"content"`
	MessageType    string                 `json:"message_type,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

type TypingPayload struct {
	ConversationID string `json:"conversation_id"`
	IsTyping       bool   `json:"is_typing"`
}

// Outbound payloads.

type AuthenticatedData struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

type AuthErrorData struct {
	Message string `json:"message"`
}

type JoinedConversationData struct {
	ConversationID string `json:"conversation_id"`
}

type NewMessageData struct {
	Message    *entity.Message `json:"message"`
	SenderName string          `json:"sender_name"`
}

type NewMessageNotificationData struct {
	ConversationID string `json:"conversation_id"`
	StorefrontName string `json:"storefront_name"`
	Content        string `json:"content"`
	SenderName     string `json:"sender_name"`
}

type MessageSentData struct {
	MessageID string `json:"message_id"`
}

type UserTypingData struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	IsTyping       bool   `json:"is_typing"`
}

type ErrorData struct {
	Message string `json:"message"`
}
