package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fishy-flock/sim"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	CheckOrigin: func(r *http.Request) bool {
		return true // viewers may be served from anywhere
	},
}

// Hub fans simulation frames out to connected viewers. It implements
// sim.FrameSink: Sync only records the latest frame, BroadcastLoop sends it.
type Hub struct {
	world   *sim.World
	logger  *slog.Logger
	rate    int
	clients map[string]*Client
	latest  sim.Frame
	fresh   bool
	mu      sync.RWMutex
}

// NewHub creates a hub for world broadcasting at rate frames per second
func NewHub(world *sim.World, rate int, logger *slog.Logger) *Hub {
	return &Hub{
		world:   world,
		logger:  logger,
		rate:    rate,
		clients: make(map[string]*Client),
	}
}

// Sync stores the frame for the next broadcast. It never blocks the tick.
func (h *Hub) Sync(frame sim.Frame) {
	h.mu.Lock()
	h.latest = frame
	h.fresh = true
	h.mu.Unlock()
}

// BroadcastLoop sends the most recent frame to all viewers until ctx is done
func (h *Hub) BroadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(h.rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.CloseAll()
			return
		case <-ticker.C:
			h.Broadcast()
		}
	}
}

// Broadcast sends the latest frame to every viewer if it has not been sent yet
func (h *Hub) Broadcast() {
	h.mu.Lock()
	if !h.fresh {
		h.mu.Unlock()
		return
	}
	frame := h.latest
	h.fresh = false
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	data := EncodeFrame(frame)
	for _, c := range clients {
		c.SendMessage(data)
	}
}

// Register adds a client and queues its welcome message
func (h *Hub) Register(c *Client) {
	frame := h.world.Snapshot()

	h.mu.Lock()
	h.clients[c.ID] = c
	total := len(h.clients)
	h.mu.Unlock()

	c.SendMessage(EncodeWelcome(WelcomePayload{
		ID:      c.ID,
		Width:   frame.Width,
		Height:  frame.Height,
		Habitat: frame.Habitat,
		Agents:  len(frame.Agents),
	}))
	h.logger.Info("viewer connected", "client", c.ID, "viewers", total)
}

// Unregister removes a client and closes its send channel
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c.ID]
	delete(h.clients, c.ID)
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Info("viewer disconnected", "client", c.ID, "viewers", total)
	}
}

// CloseAll disconnects every viewer
func (h *Hub) CloseAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.Unregister(c)
	}
}

// Count returns the number of connected viewers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client represents a connected WebSocket viewer
type Client struct {
	ID        string
	Conn      *websocket.Conn
	Send      chan []byte
	Hub       *Hub
	closeOnce sync.Once
}

// NewClient creates a new client with a fresh id
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, WriteChannelSize),
		Hub:  hub,
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("websocket error", "client", c.ID, "error", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.Hub.logger.Debug("error unmarshaling message", "client", c.ID, "error", err)
			continue
		}

		c.HandleMessage(msg)
	}
}

// WritePump sends queued messages and keepalive pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(time.Duration(PingInterval) * time.Millisecond)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleMessage processes incoming client messages
func (c *Client) HandleMessage(msg ClientMessage) {
	switch msg.Type {
	case "ping":
		c.SendMessage(EncodePong(msg.Seq))
	default:
		c.Hub.logger.Debug("unknown message type", "client", c.ID, "type", msg.Type)
	}
}

// SendMessage queues data for the client, dropping the client if it cannot
// keep up
func (c *Client) SendMessage(data []byte) {
	defer func() {
		// Send may have been closed by a concurrent Unregister.
		_ = recover()
	}()

	select {
	case c.Send <- data:
	default:
		c.Hub.logger.Warn("client send channel full, closing connection", "client", c.ID)
		go c.Hub.Unregister(c)
	}
}

// HandleWebSocket upgrades HTTP connections to viewer sockets
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("websocket upgrade error", "error", err)
			return
		}

		client := NewClient(conn, hub)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}

// HandleStats serves a JSON summary of the current population
func HandleStats(world *sim.World) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sim.Summarize(world.Snapshot()))
	}
}

// NewMux wires the HTTP routes
func NewMux(world *sim.World, hub *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", HandleWebSocket(hub))
	mux.HandleFunc("/stats", HandleStats(world))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Fishy Flock Server Running"))
	})
	return mux
}
