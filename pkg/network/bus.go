// Package network carries the event-bus abstraction: named JSON
// messages between connected clients and the room engine, over
// websocket connections managed by a Hub.
package network

import "github.com/hearttiles/server/pkg/messages"

// EventDisconnected is synthesized by the hub when a connection goes
// away, so the dispatcher can clean up room membership. It is never a
// client-sent event.
const EventDisconnected = "_disconnected"

// EventBus delivers named messages to connected clients: room-scoped
// broadcast and per-connection emit.
type EventBus interface {
	BroadcastToRoom(roomCode, event string, payload interface{})
	SendToConnection(connID, event string, payload interface{})
}

// InboundEvent is one named message received from a connection,
// delivered to the single dispatcher goroutine. UserID is set only on
// synthesized disconnect events, where the hub has already dropped the
// connection's identity binding.
type InboundEvent struct {
	ConnID   string
	UserID   string
	Envelope messages.Envelope
}
