// Package status pushes rendered frame reports to websocket clients.
package status

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mogaika/scenegraph/logging"
)

const (
	pingPeriod   = 30 * time.Second
	writeTimeout = 40 * time.Second
	sendBuffer   = 32
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans every broadcast message out to registered clients.
// New clients first receive the last message sent.
type Hub struct {
	lock        sync.Mutex
	clients     map[*client]struct{}
	lastMessage []byte
	broadcast   chan []byte
	log         *zap.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*client]struct{}),
		broadcast: make(chan []byte, 16),
		log:       logging.Root().Named("status"),
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Warn("ws write msg error", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Warn("ws write ping error", zap.Error(err))
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed and a closed
// connection is noticed.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			h.unregister(c)
			return
		}
	}
}

// Register starts serving conn until it fails or the hub is stopped.
func (h *Hub) Register(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.lock.Lock()
	h.clients[c] = struct{}{}
	if h.lastMessage != nil {
		c.send <- h.lastMessage
	}
	h.lock.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) unregister(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) ClientsCount() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// Broadcast queues v, encoded as JSON, for every client.
func (h *Hub) Broadcast(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "Failed to marshal broadcast")
	}
	h.broadcast <- data
	return nil
}

// LastMessage returns the latest message handed to clients.
func (h *Hub) LastMessage() []byte {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.lastMessage
}

func (h *Hub) deliver(data []byte) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.lastMessage = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// slow client, drop it
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Run delivers broadcasts until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case data := <-h.broadcast:
			h.deliver(data)
		case <-ctx.Done():
			h.lock.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.lock.Unlock()
			return
		}
	}
}
