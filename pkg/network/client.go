package network

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/messages"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

type client struct {
	hub  *Hub
	id   string
	conn *websocket.Conn
	send chan []byte

	closeMu sync.RWMutex
	closed  bool
}

func (c *client) enqueue(data []byte) {
	c.closeMu.RLock()
	defer c.closeMu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn("Dropping message to slow connection %s", c.id)
	}
}

func (c *client) markClosed() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	c.closed = true
}

func (c *client) readPump() {
	defer func() {
		c.markClosed()
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error("Error reading from connection %s: %v", c.id, err)
			}
			log.Trace("Connection %s closed", c.id)
			return
		}

		var envelope messages.Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			log.Debug("Ignoring malformed message from %s: %v", c.id, err)
			continue
		}
		c.hub.inbound <- InboundEvent{ConnID: c.id, Envelope: envelope}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
