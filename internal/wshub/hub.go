package wshub

import (
	"context"
	"log"
	"sync"

	"aimrange/internal/gamedata"
	"aimrange/internal/modes"

	"github.com/coder/websocket"
)

// Client message types.
const (
	TypeHello  = "hello"
	TypeAim    = "aim"
	TypeFire   = "fire"
	TypeMode   = "mode"
	TypePreset = "preset"
	TypeRetry  = "retry"
	TypeMenu   = "menu"
)

// Server message types.
const (
	TypeWelcome  = "welcome"
	TypeSnapshot = "snapshot"
	TypeSfx      = "sfx"
	TypeShot     = "shot"
	TypeRound    = "round"
	TypeFeed     = "feed"
	TypeError    = "error"
)

// ClientMessage is what the browser sends. X and Y carry the crosshair for
// aim and fire, and the viewport size for hello.
type ClientMessage struct {
	Type     string  `json:"t"`
	PlayerID string  `json:"id,omitempty"`
	Name     string  `json:"n,omitempty"`
	Key      string  `json:"k,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
}

// ServerMessage is what the service pushes to the browser.
type ServerMessage struct {
	Type      string             `json:"t"`
	SessionID string             `json:"sid,omitempty"`
	PlayerID  string             `json:"id,omitempty"`
	Sound     string             `json:"s,omitempty"`
	Distance  float64            `json:"d,omitempty"`
	Center    bool               `json:"c,omitempty"`
	Frame     *gamedata.GameData `json:"f,omitempty"`
	Shot      *gamedata.Shot     `json:"shot,omitempty"`
	Modes     []modes.Mode       `json:"modes,omitempty"`
	Payload   any                `json:"p,omitempty"`
	Error     string             `json:"e,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	SessionID string
	PlayerID  string
	Name      string
	Conn      *websocket.Conn
	Codec     Codec
	Send      chan []byte
}

func NewClient(sessionID string, conn *websocket.Conn, codec Codec) *Client {
	if codec == nil {
		codec = JSON
	}
	return &Client{
		SessionID: sessionID,
		Conn:      conn,
		Codec:     codec,
		Send:      make(chan []byte, 64),
	}
}

// Enqueue encodes msg and queues it without blocking. It reports false if
// the message was dropped.
func (c *Client) Enqueue(msg ServerMessage) bool {
	data, err := c.Codec.Encode(msg)
	if err != nil {
		log.Printf("[WSHub] Encode error: %v\n", err)
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, c.Codec.MessageType(), msg); err != nil {
				return
			}
		}
	}
}

// Hub tracks every live connection so announcements can reach all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.SessionID] = c
}

// Unregister removes a client and closes its Send channel. The caller must
// be done enqueueing to it.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[sessionID]; ok {
		close(c.Send)
		delete(h.clients, sessionID)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client. Non-blocking: drops if channel full.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.BroadcastExcept("", msg)
}

// BroadcastExcept sends a message to all clients except the given session.
func (h *Hub) BroadcastExcept(sessionID string, msg ServerMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == sessionID {
			continue
		}
		c.Enqueue(msg)
	}
}
