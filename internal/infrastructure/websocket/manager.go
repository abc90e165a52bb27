package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nuptio/internal/domain/repository"
	"nuptio/internal/infrastructure/ratelimit"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// TokenVerifier resolves an ID token to a user ID.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Client is one WebSocket connection. Identity fields stay empty until the
// authenticate handshake succeeds; rooms holds the connection's current
// memberships and is guarded by the manager mutex.
type Client struct {
	UserID    string
	UserName  string
	UserEmail string

	token  string
	rooms  map[string]bool
	closed bool

	Conn *websocket.Conn
	Send chan []byte
}

// NewClient wraps a freshly upgraded connection. The token captured at
// upgrade time is held until the client sends its authenticate event.
func NewClient(conn *websocket.Conn, token string) *Client {
	return &Client{
		token: token,
		rooms: make(map[string]bool),
		Conn:  conn,
		Send:  make(chan []byte, 256),
	}
}

// Manager owns every live connection and the named rooms they belong to.
type Manager struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}

	mutex sync.RWMutex

	verifier      TokenVerifier
	users         repository.UserRepository
	storefronts   repository.StorefrontRepository
	conversations repository.ConversationRepository
	limiter       *ratelimit.RateLimiter
}

func NewManager(
	verifier TokenVerifier,
	users repository.UserRepository,
	storefronts repository.StorefrontRepository,
	conversations repository.ConversationRepository,
	limiter *ratelimit.RateLimiter,
) *Manager {
	return &Manager{
		clients:       make(map[*Client]bool),
		rooms:         make(map[string]map[*Client]bool),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		done:          make(chan struct{}),
		verifier:      verifier,
		users:         users,
		storefronts:   storefronts,
		conversations: conversations,
		limiter:       limiter,
	}
}

// Start runs the registration loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = true
				m.mutex.Unlock()
				log.Printf("WebSocket: connection registered (%d active)", m.ClientCount())

			case client := <-m.Unregister:
				m.removeClient(client)

			case <-ctx.Done():
				close(m.done)
				return
			}
		}
	}()
}

func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client]; !ok {
		return
	}

	for room := range client.rooms {
		m.leaveLocked(client, room)
	}
	delete(m.clients, client)
	client.closed = true
	close(client.Send)

	if client.UserID != "" {
		log.Printf("WebSocket: client %s disconnected", client.UserID)
	}
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// Join adds the client to a named room. Joining twice is a no-op.
func (m *Manager) Join(client *Client, room string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members, ok := m.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		m.rooms[room] = members
	}
	members[client] = true
	client.rooms[room] = true
}

// Leave removes the client from a room. Leaving a room the client is not in
// is a no-op.
func (m *Manager) Leave(client *Client, room string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.leaveLocked(client, room)
}

func (m *Manager) leaveLocked(client *Client, room string) {
	delete(client.rooms, room)
	members, ok := m.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(m.rooms, room)
	}
}

// IsMember reports whether the client currently belongs to the room.
func (m *Manager) IsMember(client *Client, room string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return client.rooms[room]
}

// RoomSize returns the number of connections in a room.
func (m *Manager) RoomSize(room string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms[room])
}

// BroadcastToRoom delivers an event to every connection in the room.
func (m *Manager) BroadcastToRoom(room string, event Event) {
	m.broadcast(room, nil, event)
}

// BroadcastToRoomExcept delivers an event to the room, skipping one
// connection (typically the originator).
func (m *Manager) BroadcastToRoomExcept(room string, except *Client, event Event) {
	m.broadcast(room, except, event)
}

func (m *Manager) broadcast(room string, except *Client, event Event) {
	payload, err := event.marshal()
	if err != nil {
		log.Printf("WebSocket: failed to marshal %s event: %v", event.Type, err)
		return
	}

	m.mutex.RLock()
	members := make([]*Client, 0, len(m.rooms[room]))
	for client := range m.rooms[room] {
		if client != except {
			members = append(members, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range members {
		m.deliver(client, payload)
	}
}

// SendToClient delivers an event to a single connection.
func (m *Manager) SendToClient(client *Client, event Event) {
	payload, err := event.marshal()
	if err != nil {
		log.Printf("WebSocket: failed to marshal %s event: %v", event.Type, err)
		return
	}
	m.deliver(client, payload)
}

// deliver drops the connection when its send buffer is full; a reader that
// slow is treated as gone. The closed flag and the Send close both happen
// under the manager mutex, so re-checking it here before sending rules out
// a send on a channel a concurrent removeClient already closed.
func (m *Manager) deliver(client *Client, payload []byte) {
	m.mutex.RLock()
	if client.closed {
		m.mutex.RUnlock()
		return
	}

	select {
	case client.Send <- payload:
		m.mutex.RUnlock()
	default:
		m.mutex.RUnlock()
		log.Printf("WebSocket: send buffer full for client %s, dropping connection", client.UserID)
		m.removeClient(client)
	}
}

// unregister hands the client back to the registration loop, or gives up if
// the loop has already exited on shutdown.
func (m *Manager) unregister(client *Client) {
	select {
	case m.Unregister <- client:
	case <-m.done:
	}
}

// ReadPump reads inbound frames until the connection drops, dispatching each
// to the event handlers. Runs on the upgrade goroutine.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket: read error: %v", err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket: write error: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
