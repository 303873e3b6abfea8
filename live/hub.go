// Package live pushes order events and page revalidations to connected
// admin dashboards over websockets.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/foodiego/utils"
)

// EventRevalidate carries the page paths whose cached renders were dropped.
const EventRevalidate = "revalidate"

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many messages may queue for a slow client before
	// it is dropped.
	sendBuffer = 16
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	user string
	send chan []byte
}

// Hub holds every connected dashboard client. Each client has its own
// writer goroutine, so Broadcast never waits on the network.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// Register adds a connection to the broadcast set and starts its writer.
func (h *Hub) Register(conn *websocket.Conn, user string) {
	c := &client{conn: conn, user: user, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	total := len(h.clients)
	h.mutex.Unlock()

	go h.writePump(c)
	utils.InfoLogger.Printf("Live client connected: %s (%d total)", user, total)
}

// Unregister removes a connection. Its writer closes the socket.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.remove(conn)
}

func (h *Hub) remove(conn *websocket.Conn) {
	c, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(c.send)
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.InfoLogger.WithError(err).WithField("user", c.user).Warn("Dropping live client")
			h.Unregister(c.conn)
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client. A client whose queue is full is
// dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("Error marshaling live message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.InfoLogger.WithField("user", c.user).Warn("Live client too slow, dropping")
			h.remove(conn)
		}
	}
}

// Publish broadcasts an event under its routing key.
func (h *Hub) Publish(_ context.Context, key string, v any) error {
	h.Broadcast(Message{Event: key, Data: v})
	return nil
}

// Revalidate tells dashboards which page paths changed.
func (h *Hub) Revalidate(paths ...string) {
	h.Broadcast(Message{
		Event: EventRevalidate,
		Data:  map[string][]string{"paths": paths},
	})
}
