package network

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/messages"
)

const (
	// InboundQueueSize bounds the channel feeding the dispatcher.
	InboundQueueSize = 1024
	// SendQueueSize bounds each connection's outbound queue.
	SendQueueSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub manages websocket connections, their identity bindings, and
// room membership, and implements EventBus.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	users   map[string]string
	rooms   map[string]map[string]bool
	inbound chan InboundEvent
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		users:   make(map[string]string),
		rooms:   make(map[string]map[string]bool),
		inbound: make(chan InboundEvent, InboundQueueSize),
	}
}

// Events returns the channel of inbound events. A single dispatcher
// goroutine drains it, so each event is handled to completion before
// the next.
func (h *Hub) Events() <-chan InboundEvent {
	return h.inbound
}

// ServeWS upgrades an HTTP request and runs the connection's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket: %v", err)
		return
	}

	c := &client{
		hub:  h,
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, SendQueueSize),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	log.Debug("New connection %s from %s", c.id, conn.RemoteAddr().String())

	go c.writePump()
	go c.readPump()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; !ok {
		h.mu.Unlock()
		return
	}
	userID := h.users[c.id]
	delete(h.clients, c.id)
	delete(h.users, c.id)
	for code, members := range h.rooms {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
	close(c.send)
	h.mu.Unlock()

	h.inbound <- InboundEvent{
		ConnID:   c.id,
		UserID:   userID,
		Envelope: messages.Envelope{Type: EventDisconnected},
	}
}

// BindUser attaches an authenticated user identity to a connection.
func (h *Hub) BindUser(connID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.users[connID] = userID
}

// UserID returns the identity bound to a connection, or "".
func (h *Hub) UserID(connID string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.users[connID]
}

// JoinRoom adds a connection to a room's broadcast set.
func (h *Hub) JoinRoom(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[roomCode]
	if !ok {
		members = make(map[string]bool)
		h.rooms[roomCode] = members
	}
	members[connID] = true
}

// LeaveRoom removes a connection from a room's broadcast set.
func (h *Hub) LeaveRoom(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomCode]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomCode)
		}
	}
}

// BroadcastToRoom sends a named message to every connection in a room.
func (h *Hub) BroadcastToRoom(roomCode, event string, payload interface{}) {
	data, err := encodeEnvelope(event, payload)
	if err != nil {
		log.Error("Failed to encode %s broadcast: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for connID := range h.rooms[roomCode] {
		if c, ok := h.clients[connID]; ok {
			c.enqueue(data)
		}
	}
}

// SendToConnection sends a named message to a single connection.
func (h *Hub) SendToConnection(connID, event string, payload interface{}) {
	data, err := encodeEnvelope(event, payload)
	if err != nil {
		log.Error("Failed to encode %s message: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[connID]; ok {
		c.enqueue(data)
	}
}

func encodeEnvelope(event string, payload interface{}) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(messages.Envelope{Type: event, Payload: raw})
}
