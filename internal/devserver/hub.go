package devserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/vdomkit/pkg/middleware"
	"github.com/vango-dev/vdomkit/pkg/render"
)

// MessageType identifies a stream message.
type MessageType string

const (
	MessagePatch MessageType = "patch"
	MessageHello MessageType = "hello"
)

// Message is sent to websocket clients.
type Message struct {
	Type   MessageType `json:"type"`
	Client string      `json:"client,omitempty"`
	Target string      `json:"target,omitempty"`
	Markup string      `json:"markup,omitempty"`
}

// encode serializes msg without escaping markup characters.
func encode(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans patch messages out to websocket clients.
type Hub struct {
	logger   *slog.Logger
	clients  map[string]*client
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // dev only
			},
		},
	}
}

// HandleWebSocket upgrades the request and keeps the client registered until
// it disconnects. The first message a client receives is a hello carrying
// its id.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	middleware.RecordClientConnect()
	h.logger.Debug("stream client connected", "client", c.id)

	hello, _ := encode(Message{Type: MessageHello, Client: c.id})
	if err := c.write(hello); err != nil {
		h.remove(c)
		return
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
}

// NotifyPatch broadcasts p. It is registered as a renderer patch listener.
func (h *Hub) NotifyPatch(p render.Patch) {
	h.Broadcast(Message{Type: MessagePatch, Target: p.Key, Markup: p.Markup})
}

// Broadcast sends msg to every client and returns the number it reached.
// Clients that fail to receive it are dropped.
func (h *Hub) Broadcast(msg Message) int {
	data, err := encode(msg)
	if err != nil {
		return 0
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.logger.Debug("stream write failed", "client", c.id, "error", err)
			h.remove(c)
			continue
		}
		sent++
	}
	middleware.RecordBroadcast(sent)
	return sent
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	c.conn.Close()
	if ok {
		middleware.RecordClientDisconnect()
		h.logger.Debug("stream client disconnected", "client", c.id)
	}
}
