package wsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nuptio/pkg/logger"
)

const (
	baseDelay   = 1 * time.Second
	maxDelay    = 10 * time.Second
	maxAttempts = 5
)

// event mirrors the server's wire envelope.
type event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outboundEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// EventHandler receives every event the server pushes down the socket.
type EventHandler func(eventType string, data json.RawMessage)

// Client keeps a chat socket alive: it dials, authenticates, and re-joins
// the last conversation after a reconnect. Dropped connections are retried
// with exponential backoff up to a bounded attempt count; past that the
// client goes Offline until Reconnect is called.
type Client struct {
	url    string
	token  string
	dialer *websocket.Dialer

	OnEvent EventHandler

	mu               sync.Mutex
	conn             *websocket.Conn
	attempts         int
	wasConnected     bool
	lastConversation string
	offline          bool
	closed           bool
}

func New(url, token string) *Client {
	return &Client{
		url:    url,
		token:  token,
		dialer: websocket.DefaultDialer,
	}
}

// backoffDelay returns the wait before retry attempt n (1-based). Doubles
// from the base, capped.
func backoffDelay(attempt int) time.Duration {
	delay := baseDelay << (attempt - 1)
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

// dialDelay is the wait before a dial. The very first dial of a session is
// immediate; once a connection has dropped, every dial waits, starting at
// the base.
func dialDelay(attempt int, afterDisconnect bool) time.Duration {
	if attempt == 0 {
		if afterDisconnect {
			return baseDelay
		}
		return 0
	}
	return backoffDelay(attempt)
}

func (c *Client) resetBackoff() {
	c.attempts = 0
}

// Run connects and keeps reading until ctx is cancelled, Close is called, or
// the reconnect budget runs out.
func (c *Client) Run(ctx context.Context) error {
	for {
		if err := c.connect(ctx); err != nil {
			return err
		}

		c.readLoop()

		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed || ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// connect dials with backoff until a connection is established or the
// attempt ceiling is reached.
func (c *Client) connect(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.attempts >= maxAttempts {
			c.offline = true
			c.mu.Unlock()
			return fmt.Errorf("offline after %d failed attempts", maxAttempts)
		}
		attempt := c.attempts
		c.attempts++
		afterDisconnect := c.wasConnected
		c.mu.Unlock()

		if delay := dialDelay(attempt, afterDisconnect); delay > 0 {
			logger.Info("Reconnecting in %s", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		conn, _, err := c.dialer.DialContext(ctx, c.url+"?token="+c.token, nil)
		if err != nil {
			logger.Warn("Dial failed: %v", err)
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.resetBackoff()
		c.wasConnected = true
		last := c.lastConversation
		c.mu.Unlock()

		if err := c.send(outboundEvent{Type: "authenticate"}); err != nil {
			conn.Close()
			continue
		}
		if last != "" {
			if err := c.send(outboundEvent{
				Type: "join_conversation",
				Data: map[string]string{"conversation_id": last},
			}); err != nil {
				conn.Close()
				continue
			}
		}

		return nil
	}
}

func (c *Client) readLoop() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return
		}

		var ev event
		if err := json.Unmarshal(payload, &ev); err != nil {
			continue
		}
		if c.OnEvent != nil {
			c.OnEvent(ev.Type, ev.Data)
		}
	}
}

func (c *Client) send(ev outboundEvent) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// JoinConversation subscribes to a conversation room and remembers it so a
// reconnect re-subscribes automatically.
func (c *Client) JoinConversation(conversationID string) error {
	c.mu.Lock()
	c.lastConversation = conversationID
	c.mu.Unlock()

	return c.send(outboundEvent{
		Type: "join_conversation",
		Data: map[string]string{"conversation_id": conversationID},
	})
}

func (c *Client) LeaveConversation(conversationID string) error {
	c.mu.Lock()
	if c.lastConversation == conversationID {
		c.lastConversation = ""
	}
	c.mu.Unlock()

	return c.send(outboundEvent{
		Type: "leave_conversation",
		Data: map[string]string{"conversation_id": conversationID},
	})
}

func (c *Client) SendMessage(conversationID, content string) error {
	return c.send(outboundEvent{
		Type: "send_message",
		Data: map[string]string{
			"conversation_id": conversationID,
			"content":         content,
		},
	})
}

func (c *Client) Typing(conversationID string, isTyping bool) error {
	return c.send(outboundEvent{
		Type: "typing",
		Data: map[string]interface{}{
			"conversation_id": conversationID,
			"is_typing":       isTyping,
		},
	})
}

// Offline reports whether the reconnect budget has been exhausted.
func (c *Client) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// Reconnect clears the offline state and restarts the backoff cycle. Call
// Run again afterwards.
func (c *Client) Reconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offline = false
	c.resetBackoff()
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
