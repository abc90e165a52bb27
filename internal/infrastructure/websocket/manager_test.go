package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nuptio/internal/domain/entity"
	"nuptio/internal/infrastructure/ratelimit"
)

// Mocks for the manager's collaborators.

type mockTokenVerifier struct {
	mock.Mock
}

func (m *mockTokenVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStorefrontRepository struct {
	mock.Mock
}

func (m *mockStorefrontRepository) Create(ctx context.Context, storefront *entity.Storefront) error {
	args := m.Called(ctx, storefront)
	return args.Error(0)
}

func (m *mockStorefrontRepository) GetByID(ctx context.Context, id string) (*entity.Storefront, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Storefront), args.Error(1)
}

func (m *mockStorefrontRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Storefront, int64, error) {
	args := m.Called(ctx, filter, sort, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Storefront), args.Get(1).(int64), args.Error(2)
}

func (m *mockStorefrontRepository) SearchByName(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Storefront, int64, error) {
	args := m.Called(ctx, query, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Storefront), args.Get(1).(int64), args.Error(2)
}

func (m *mockStorefrontRepository) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Storefront, int64, error) {
	args := m.Called(ctx, ownerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Storefront), args.Get(1).(int64), args.Error(2)
}

func (m *mockStorefrontRepository) Update(ctx context.Context, storefront *entity.Storefront) error {
	args := m.Called(ctx, storefront)
	return args.Error(0)
}

func (m *mockStorefrontRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStorefrontRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockConversationRepository struct {
	mock.Mock
}

func (m *mockConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *mockConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockConversationRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockConversationRepository) GetByUserAndStorefront(ctx context.Context, userID, storefrontID string) (*entity.Conversation, error) {
	args := m.Called(ctx, userID, storefrontID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *mockConversationRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Conversation), args.Get(1).(int64), args.Error(2)
}

func (m *mockConversationRepository) ListByStorefrontID(ctx context.Context, storefrontID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	args := m.Called(ctx, storefrontID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Conversation), args.Get(1).(int64), args.Error(2)
}

func (m *mockConversationRepository) SetLastMessage(ctx context.Context, id string, last entity.LastMessage) error {
	args := m.Called(ctx, id, last)
	return args.Error(0)
}

func (m *mockConversationRepository) IncrementUnread(ctx context.Context, id string, side string, delta int) error {
	args := m.Called(ctx, id, side, delta)
	return args.Error(0)
}

func (m *mockConversationRepository) ResetUnread(ctx context.Context, id string, side string) error {
	args := m.Called(ctx, id, side)
	return args.Error(0)
}

func (m *mockConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Message), args.Get(1).(int64), args.Error(2)
}

// Test fixture helpers.

type managerFixture struct {
	manager       *Manager
	verifier      *mockTokenVerifier
	users         *mockUserRepository
	storefronts   *mockStorefrontRepository
	conversations *mockConversationRepository
}

func newManagerFixture() *managerFixture {
	f := &managerFixture{
		verifier:      new(mockTokenVerifier),
		users:         new(mockUserRepository),
		storefronts:   new(mockStorefrontRepository),
		conversations: new(mockConversationRepository),
	}
	f.manager = NewManager(f.verifier, f.users, f.storefronts, f.conversations, ratelimit.NewRateLimiter())
	return f
}

func newTestClient() *Client {
	return &Client{
		rooms: make(map[string]bool),
		Send:  make(chan []byte, 16),
	}
}

func newAuthedClient(userID, userName string) *Client {
	c := newTestClient()
	c.UserID = userID
	c.UserName = userName
	return c
}

type receivedEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readEvent(t *testing.T, c *Client) receivedEvent {
	t.Helper()
	select {
	case raw := <-c.Send:
		var event receivedEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatal("expected an event on the send channel")
		return receivedEvent{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("expected no event, got: %s", raw)
	default:
	}
}

// Room membership tests.

func TestJoinAndLeaveRoom(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")

	f.manager.Join(c, "conversation:c1")
	assert.True(t, f.manager.IsMember(c, "conversation:c1"))
	assert.Equal(t, 1, f.manager.RoomSize("conversation:c1"))

	// Joining twice does not double-count.
	f.manager.Join(c, "conversation:c1")
	assert.Equal(t, 1, f.manager.RoomSize("conversation:c1"))

	f.manager.Leave(c, "conversation:c1")
	assert.False(t, f.manager.IsMember(c, "conversation:c1"))
	assert.Equal(t, 0, f.manager.RoomSize("conversation:c1"))

	// Leaving again is a no-op.
	f.manager.Leave(c, "conversation:c1")
	assert.Equal(t, 0, f.manager.RoomSize("conversation:c1"))
}

func TestBroadcastToRoomExceptSkipsSender(t *testing.T) {
	f := newManagerFixture()
	sender := newAuthedClient("u1", "Alice")
	other := newAuthedClient("u2", "Bob")

	f.manager.Join(sender, "conversation:c1")
	f.manager.Join(other, "conversation:c1")

	f.manager.BroadcastToRoomExcept("conversation:c1", sender, newEvent(EventUserTyping, UserTypingData{
		ConversationID: "c1",
		UserID:         "u1",
		IsTyping:       true,
	}))

	event := readEvent(t, other)
	assert.Equal(t, EventUserTyping, event.Type)
	assertNoEvent(t, sender)
}

func TestDeliverToDisconnectedClientDoesNotPanic(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")

	f.manager.mutex.Lock()
	f.manager.clients[c] = true
	f.manager.mutex.Unlock()
	f.manager.Join(c, "conversation:c1")

	// A broadcast snapshots room members, releases the lock, then delivers;
	// the client can disconnect in between. Delivery after removal must be
	// a no-op rather than a send on the closed channel.
	f.manager.removeClient(c)

	require.NotPanics(t, func() {
		f.manager.deliver(c, []byte(`{"type":"new_message"}`))
	})
}

func TestUnregisterAfterShutdownDoesNotBlock(t *testing.T) {
	f := newManagerFixture()

	ctx, cancel := context.WithCancel(context.Background())
	f.manager.Start(ctx)
	cancel()

	select {
	case <-f.manager.done:
	case <-time.After(time.Second):
		t.Fatal("registration loop did not stop on context cancellation")
	}

	finished := make(chan struct{})
	go func() {
		f.manager.unregister(newAuthedClient("u1", "Alice"))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("unregister blocked after the registration loop exited")
	}
}

func TestDisconnectCleansUpAllRooms(t *testing.T) {
	f := newManagerFixture()
	c := newAuthedClient("u1", "Alice")

	f.manager.mutex.Lock()
	f.manager.clients[c] = true
	f.manager.mutex.Unlock()

	f.manager.Join(c, "user:u1")
	f.manager.Join(c, "conversation:c1")
	f.manager.Join(c, "conversation:c2")

	f.manager.removeClient(c)

	assert.Equal(t, 0, f.manager.RoomSize("user:u1"))
	assert.Equal(t, 0, f.manager.RoomSize("conversation:c1"))
	assert.Equal(t, 0, f.manager.RoomSize("conversation:c2"))
	assert.Equal(t, 0, f.manager.ClientCount())
}
