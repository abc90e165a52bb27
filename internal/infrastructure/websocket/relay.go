package websocket

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nuptio/internal/domain/entity"
)

// HandleClientMessage dispatches one inbound frame. Everything except the
// authenticate handshake requires a bound identity.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var event inboundEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		m.sendError(client, "Invalid message format")
		return
	}

	switch event.Type {
	case EventAuthenticate:
		m.handleAuthenticate(client, event.Data)

	case EventJoinConversation:
		m.handleJoinConversation(client, event.Data)

	case EventLeaveConversation:
		m.handleLeaveConversation(client, event.Data)

	case EventSendMessage:
		m.handleSendMessage(client, event.Data)

	case EventTyping:
		m.handleTyping(client, event.Data)

	default:
		m.sendError(client, "Unknown event type")
	}
}

// handleAuthenticate resolves the connection's ID token, binds the identity
// and joins the per-user room. Providers also join a provider room per
// storefront they own so notifications reach any of their connections. On
// failure the connection stays open; only an auth_error is emitted.
func (m *Manager) handleAuthenticate(client *Client, data json.RawMessage) {
	var payload AuthenticatePayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			m.SendToClient(client, newEvent(EventAuthError, AuthErrorData{Message: "Invalid authenticate payload"}))
			return
		}
	}

	token := client.token
	if payload.Token != "" {
		token = payload.Token
	}
	if token == "" {
		m.SendToClient(client, newEvent(EventAuthError, AuthErrorData{Message: "Missing authentication token"}))
		return
	}

	ctx := context.Background()

	uid, err := m.verifier.VerifyToken(ctx, token)
	if err != nil {
		log.Printf("WebSocket: token verification failed: %v", err)
		m.SendToClient(client, newEvent(EventAuthError, AuthErrorData{Message: "Invalid authentication token"}))
		return
	}

	user, err := m.users.GetByID(ctx, uid)
	if err != nil {
		log.Printf("WebSocket: failed to load user %s: %v", uid, err)
		m.SendToClient(client, newEvent(EventAuthError, AuthErrorData{Message: "User not found"}))
		return
	}

	client.UserID = user.ID
	client.UserName = user.Username
	client.UserEmail = user.Email

	m.Join(client, UserRoom(user.ID))

	if user.Role == "provider" {
		storefronts, _, err := m.storefronts.ListByOwnerID(ctx, user.ID, "", 0, 0)
		if err != nil {
			log.Printf("WebSocket: failed to list storefronts for provider %s: %v", user.ID, err)
		}
		for _, storefront := range storefronts {
			m.Join(client, ProviderRoom(storefront.ID))
		}
	}

	m.SendToClient(client, newEvent(EventAuthenticated, AuthenticatedData{
		UserID:   user.ID,
		UserName: user.Username,
	}))

	log.Printf("WebSocket: client %s authenticated", user.ID)
}

// handleJoinConversation authorizes by ownership lookup: the conversation
// must exist AND belong to the caller, otherwise the reply is the same
// "Conversation not found" either way.
func (m *Manager) handleJoinConversation(client *Client, data json.RawMessage) {
	if !m.requireAuth(client) {
		return
	}

	var payload JoinConversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		m.sendError(client, "Missing conversation_id")
		return
	}

	_, err := m.conversations.GetByIDAndUser(context.Background(), payload.ConversationID, client.UserID)
	if err != nil {
		m.sendError(client, "Conversation not found")
		return
	}

	m.Join(client, ConversationRoom(payload.ConversationID))
	m.SendToClient(client, newEvent(EventJoinedConversation, JoinedConversationData{
		ConversationID: payload.ConversationID,
	}))

	log.Printf("WebSocket: client %s joined conversation %s", client.UserID, payload.ConversationID)
}

func (m *Manager) handleLeaveConversation(client *Client, data json.RawMessage) {
	if !m.requireAuth(client) {
		return
	}

	var payload LeaveConversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		m.sendError(client, "Missing conversation_id")
		return
	}

	m.Leave(client, ConversationRoom(payload.ConversationID))
}

// handleSendMessage is the buyer-side relay: persist, update the
// conversation snapshot, fan out, then ack the sender. A failure anywhere
// reports to the sender only; there is no retry and no rollback of steps
// already applied.
func (m *Manager) handleSendMessage(client *Client, data json.RawMessage) {
	if !m.requireAuth(client) {
		return
	}

	if ok, wait := m.limiter.Allow(client.UserID, "send_message"); !ok {
		m.sendError(client, "Rate limit exceeded, retry in "+wait.Round(time.Second).String())
		return
	}

	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		m.sendError(client, "Invalid send_message payload")
		return
	}
	if payload.ConversationID == "" || strings.TrimSpace(payload.Content) == "" {
		m.sendError(client, "Missing conversation_id or content")
		return
	}

	ctx := context.Background()

	conversation, err := m.conversations.GetByIDAndUser(ctx, payload.ConversationID, client.UserID)
	if err != nil {
		m.sendError(client, "Conversation not found")
		return
	}

	storefront, err := m.storefronts.GetByID(ctx, conversation.StorefrontID)
	if err != nil {
		m.sendError(client, "Storefront not found")
		return
	}

	messageType := payload.MessageType
	if messageType == "" {
		messageType = "text"
	}

	now := time.Now()
	message := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conversation.ID,
		SenderType:     entity.SenderUser,
		SenderID:       client.UserID,
		Content:        payload.Content,
		Type:           messageType,
		Metadata:       payload.Metadata,
		DeliveredAt:    now,
		CreatedAt:      now,
	}

	if err := m.conversations.CreateMessage(ctx, message); err != nil {
		log.Printf("WebSocket: failed to persist message in conversation %s: %v", conversation.ID, err)
		m.sendError(client, "Failed to send message")
		return
	}

	if err := m.conversations.SetLastMessage(ctx, conversation.ID, entity.LastMessage{
		Content:    message.Content,
		Timestamp:  now,
		SenderType: entity.SenderUser,
	}); err != nil {
		log.Printf("WebSocket: failed to update last message for conversation %s: %v", conversation.ID, err)
		m.sendError(client, "Failed to send message")
		return
	}

	if err := m.conversations.IncrementUnread(ctx, conversation.ID, entity.SenderProvider, 1); err != nil {
		log.Printf("WebSocket: failed to bump unread count for conversation %s: %v", conversation.ID, err)
		m.sendError(client, "Failed to send message")
		return
	}

	m.BroadcastToRoom(ConversationRoom(conversation.ID), newEvent(EventNewMessage, NewMessageData{
		Message:    message,
		SenderName: client.UserName,
	}))

	m.BroadcastToRoom(ProviderRoom(conversation.StorefrontID), newEvent(EventNewMessageNotification, NewMessageNotificationData{
		ConversationID: conversation.ID,
		StorefrontName: storefront.Name,
		Content:        message.Content,
		SenderName:     client.UserName,
	}))

	m.SendToClient(client, newEvent(EventMessageSent, MessageSentData{MessageID: message.ID}))
}

// handleTyping relays a transient typing flag to the other room members.
// Nothing is persisted and the sender never hears its own indicator. The
// sender must already be in the room.
func (m *Manager) handleTyping(client *Client, data json.RawMessage) {
	if !m.requireAuth(client) {
		return
	}

	if ok, _ := m.limiter.Allow(client.UserID, "typing"); !ok {
		return
	}

	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		m.sendError(client, "Missing conversation_id")
		return
	}

	room := ConversationRoom(payload.ConversationID)
	if !m.IsMember(client, room) {
		m.sendError(client, "Conversation not found")
		return
	}

	m.BroadcastToRoomExcept(room, client, newEvent(EventUserTyping, UserTypingData{
		ConversationID: payload.ConversationID,
		UserID:         client.UserID,
		UserName:       client.UserName,
		IsTyping:       payload.IsTyping,
	}))
}

func (m *Manager) requireAuth(client *Client) bool {
	if client.UserID == "" {
		m.sendError(client, "Not authenticated")
		return false
	}
	return true
}

func (m *Manager) sendError(client *Client, message string) {
	m.SendToClient(client, newEvent(EventError, ErrorData{Message: message}))
}
