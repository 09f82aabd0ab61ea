package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taiwoajasa245/march16-verse-api/internal/events"
	"github.com/taiwoajasa245/march16-verse-api/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Widgets and app extensions connect without a browser origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub forwards broker events to every connected websocket client so they
// can re-resolve the verse.
type Hub struct {
	broker *events.Broker
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	// stopped is set once Run returns; no client is accepted after that.
	stopped bool
}

func NewHub(broker *events.Broker, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		broker:  broker,
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Run relays events until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	ch, cancel := h.broker.Subscribe(64)
	defer cancel()

	h.mu.Lock()
	h.stopped = false
	h.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case ev, ok := <-ch:
			if !ok {
				h.closeAll()
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("could not encode event", "error", err)
				continue
			}
			h.broadcast(data)
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow client, drop it.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "clients", n)
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client disconnected", "clients", n)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Stopped reports whether Run has returned.
func (h *Hub) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS godoc
// @Summary Live refresh events
// @Description Upgrades to a websocket that receives region, translation and settings changes as JSON.
// @Tags events
// @Failure 503 {object} response.APIResponse
// @Router /events [get]
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.Stopped() {
		response.Error(w, http.StatusServiceUnavailable, "Event stream is shutting down", "")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 16)}
	if !h.register(c) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// readPump only watches for the close and keeps the deadline moving.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}
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
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
