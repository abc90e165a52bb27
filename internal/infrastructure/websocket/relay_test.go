package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nuptio/internal/domain/entity"
	"nuptio/pkg/errors"
)

func frame(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})
	require.NoError(t, err)
	return raw
}

func TestAuthenticateSuccess(t *testing.T) {
	f := newManagerFixture()
	c := newTestClient()
	c.token = "good-token"

	f.verifier.On("VerifyToken", mock.Anything, "good-token").Return("u1", nil)
	f.users.On("GetByID", mock.Anything, "u1").Return(&entity.User{
		ID:       "u1",
		Username: "Alice",
		Email:    "alice@example.com",
		Role:     "user",
	}, nil)

	f.manager.HandleClientMessage(c, frame(t, EventAuthenticate, nil))

	event := readEvent(t, c)
	assert.Equal(t, EventAuthenticated, event.Type)

	var data AuthenticatedData
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "u1", data.UserID)
	assert.Equal(t, "Alice", data.UserName)

	assert.Equal(t, "u1", c.UserID)
	assert.True(t, f.manager.IsMember(c, "user:u1"))
}

func TestAuthenticateProviderJoinsStorefrontRooms(t *testing.T) {
	f := newManagerFixture()
	c := newTestClient()
	c.token = "provider-token"

	f.verifier.On("VerifyToken", mock.Anything, "provider-token").Return("p1", nil)
	f.users.On("GetByID", mock.Anything, "p1").Return(&entity.User{
		ID:       "p1",
		Username: "Vendor",
		Role:     "provider",
	}, nil)
	f.storefronts.On("ListByOwnerID", mock.Anything, "p1", "", 0, 0).Return([]*entity.Storefront{
		{ID: "s1", OwnerID: "p1"},
		{ID: "s2", OwnerID: "p1"},
	}, int64(2), nil)

	f.manager.HandleClientMessage(c, frame(t, EventAuthenticate, nil))

	event := readEvent(t, c)
	assert.Equal(t, EventAuthenticated, event.Type)
	assert.True(t, f.manager.IsMember(c, "user:p1"))
	assert.True(t, f.manager.IsMember(c, "provider:s1"))
	assert.True(t, f.manager.IsMember(c, "provider:s2"))
}

func TestAuthenticateBadTokenKeepsConnectionOpen(t *testing.T) {
	f := newManagerFixture()
	c := newTestClient()
	c.token = "bad-token"

	f.verifier.On("VerifyToken", mock.Anything, "bad-token").Return("", errors.Unauthorized("invalid token", nil))

	f.manager.HandleClientMessage(c, frame(t, EventAuthenticate, nil))

	event := readEvent(t, c)
	assert.Equal(t, EventAuthError, event.Type)
	assert.Empty(t, c.UserID)

	// The connection is still usable; privileged events just get refused.
	f.manager.HandleClientMessage(c, frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: "c1",
		Content:        "hello",
	}))
	event = readEvent(t, c)
	assert.Equal(t, EventError, event.Type)
	f.conversations.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestJoinConversationOwner(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")

	f.conversations.On("GetByIDAndUser", mock.Anything, "c1", "u1").Return(&entity.Conversation{
		ID:           "c1",
		UserID:       "u1",
		StorefrontID: "s1",
	}, nil)

	f.manager.HandleClientMessage(c, frame(t, EventJoinConversation, JoinConversationPayload{ConversationID: "c1"}))

	event := readEvent(t, c)
	assert.Equal(t, EventJoinedConversation, event.Type)
	assert.True(t, f.manager.IsMember(c, "conversation:c1"))
}

func TestJoinConversationNonOwnerGetsNotFound(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("intruder", "Mallory")

	f.conversations.On("GetByIDAndUser", mock.Anything, "c1", "intruder").Return(nil, errors.NotFound("Conversation", nil))

	f.manager.HandleClientMessage(c, frame(t, EventJoinConversation, JoinConversationPayload{ConversationID: "c1"}))

	event := readEvent(t, c)
	assert.Equal(t, EventError, event.Type)

	var data ErrorData
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "Conversation not found", data.Message)
	assert.False(t, f.manager.IsMember(c, "conversation:c1"))
}

func TestLeaveConversationIsIdempotent(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")
	f.manager.Join(c, "conversation:c1")

	f.manager.HandleClientMessage(c, frame(t, EventLeaveConversation, LeaveConversationPayload{ConversationID: "c1"}))
	assert.False(t, f.manager.IsMember(c, "conversation:c1"))
	assertNoEvent(t, c)

	// Leaving a room we are not in produces no error.
	f.manager.HandleClientMessage(c, frame(t, EventLeaveConversation, LeaveConversationPayload{ConversationID: "c1"}))
	assertNoEvent(t, c)
}

func TestSendMessageRelay(t *testing.T) {
	f := newManagerFixture()
	sender := newAuthedClient("u1", "Alice")
	peer := newAuthedClient("p1", "Vendor")
	providerConn := newAuthedClient("p1", "Vendor")

	f.manager.Join(sender, "conversation:c1")
	f.manager.Join(peer, "conversation:c1")
	f.manager.Join(providerConn, "provider:s1")

	conversation := &entity.Conversation{ID: "c1", UserID: "u1", StorefrontID: "s1"}
	f.conversations.On("GetByIDAndUser", mock.Anything, "c1", "u1").Return(conversation, nil)
	f.storefronts.On("GetByID", mock.Anything, "s1").Return(&entity.Storefront{
		ID:   "s1",
		Name: "Rosewood Manor",
	}, nil)
	f.conversations.On("CreateMessage", mock.Anything, mock.AnythingOfType("*entity.Message")).Return(nil)
	f.conversations.On("SetLastMessage", mock.Anything, "c1", mock.AnythingOfType("entity.LastMessage")).Return(nil)
	f.conversations.On("IncrementUnread", mock.Anything, "c1", entity.SenderProvider, 1).Return(nil)

	f.manager.HandleClientMessage(sender, frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: "c1",
		Content:        "Is the venue free on June 12?",
	}))

	// Exactly one message persisted, snapshot updated, unread bumped.
	f.conversations.AssertNumberOfCalls(t, "CreateMessage", 1)
	f.conversations.AssertCalled(t, "IncrementUnread", mock.Anything, "c1", entity.SenderProvider, 1)

	persisted := f.conversations.Calls[1].Arguments.Get(1).(*entity.Message)
	assert.Equal(t, entity.SenderUser, persisted.SenderType)
	assert.Equal(t, "u1", persisted.SenderID)
	assert.Equal(t, "text", persisted.Type)
	assert.NotEmpty(t, persisted.ID)

	// Peer in the conversation room sees new_message.
	event := readEvent(t, peer)
	assert.Equal(t, EventNewMessage, event.Type)

	var newMsg NewMessageData
	require.NoError(t, json.Unmarshal(event.Data, &newMsg))
	assert.Equal(t, "Alice", newMsg.SenderName)
	assert.Equal(t, "Is the venue free on June 12?", newMsg.Message.Content)

	// Provider room gets the notification.
	event = readEvent(t, providerConn)
	assert.Equal(t, EventNewMessageNotification, event.Type)

	var notif NewMessageNotificationData
	require.NoError(t, json.Unmarshal(event.Data, &notif))
	assert.Equal(t, "c1", notif.ConversationID)
	assert.Equal(t, "Rosewood Manor", notif.StorefrontName)
	assert.Equal(t, "Alice", notif.SenderName)

	// Sender hears the room broadcast, then the ack.
	event = readEvent(t, sender)
	assert.Equal(t, EventNewMessage, event.Type)
	event = readEvent(t, sender)
	assert.Equal(t, EventMessageSent, event.Type)

	var ack MessageSentData
	require.NoError(t, json.Unmarshal(event.Data, &ack))
	assert.Equal(t, persisted.ID, ack.MessageID)
}

func TestSendMessageToForeignConversationPersistsNothing(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("intruder", "Mallory")

	f.conversations.On("GetByIDAndUser", mock.Anything, "c1", "intruder").Return(nil, errors.NotFound("Conversation", nil))

	f.manager.HandleClientMessage(c, frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: "c1",
		Content:        "let me in",
	}))

	event := readEvent(t, c)
	assert.Equal(t, EventError, event.Type)

	var data ErrorData
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "Conversation not found", data.Message)

	f.conversations.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
	f.conversations.AssertNotCalled(t, "IncrementUnread", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")

	f.manager.HandleClientMessage(c, frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: "c1",
		Content:        "   ",
	}))

	event := readEvent(t, c)
	assert.Equal(t, EventError, event.Type)
	f.conversations.AssertNotCalled(t, "GetByIDAndUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestTypingNotEchoedToSender(t *testing.T) {
	f := newManagerFixture()
	sender := newAuthedClient("u1", "Alice")
	peer := newAuthedClient("p1", "Vendor")

	f.manager.Join(sender, "conversation:c1")
	f.manager.Join(peer, "conversation:c1")

	f.manager.HandleClientMessage(sender, frame(t, EventTyping, TypingPayload{
		ConversationID: "c1",
		IsTyping:       true,
	}))

	event := readEvent(t, peer)
	assert.Equal(t, EventUserTyping, event.Type)

	var data UserTypingData
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "u1", data.UserID)
	assert.Equal(t, "Alice", data.UserName)
	assert.True(t, data.IsTyping)

	assertNoEvent(t, sender)
}

func TestTypingRequiresRoomMembership(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")

	f.manager.HandleClientMessage(c, frame(t, EventTyping, TypingPayload{
		ConversationID: "c1",
		IsTyping:       true,
	}))

	event := readEvent(t, c)
	assert.Equal(t, EventError, event.Type)

	var data ErrorData
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "Conversation not found", data.Message)
}

func TestUnknownEventType(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")

	f.manager.HandleClientMessage(c, frame(t, "bogus", nil))

	event := readEvent(t, c)
	assert.Equal(t, EventError, event.Type)
}
