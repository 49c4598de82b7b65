package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"Hermes/internal/domain/models"
	svcmetrics "Hermes/internal/service/metrics"
	applogger "Hermes/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans cycle results out to websocket subscribers.
// Slow subscribers drop messages instead of stalling the scheduler.
type Hub struct {
	mu           sync.Mutex
	clients      map[*client]struct{}
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	l            *applogger.Logger
}

func NewHub(pingInterval time.Duration, l *applogger.Logger) *Hub {
	if l == nil {
		l = applogger.Nop()
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Hub{
		clients:      make(map[*client]struct{}),
		upgrader:     websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		pingInterval: pingInterval,
		l:            l,
	}
}

// ServeWS upgrades the request and keeps the subscriber until it disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)

	go h.writeLoop(c)
	h.readLoop(c)
	return nil
}

// Broadcast sends res to every subscriber.
func (h *Hub) Broadcast(res *models.CycleResult) {
	b, err := json.Marshal(res)
	if err != nil {
		h.l.Error("marshal cycle result", applogger.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			// drop on backpressure
		}
	}
}

// Len reports connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	cs := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		cs = append(cs, c)
	}
	h.mu.Unlock()
	for _, c := range cs {
		h.remove(c)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	svcmetrics.StreamSubscribers.Inc()
	h.l.Debug("stream subscriber connected", applogger.Int("subscribers", n))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.mu.Unlock()
	svcmetrics.StreamSubscribers.Dec()
	_ = c.conn.Close()
}

// readLoop only watches for the peer going away; inbound frames are ignored.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case b, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				h.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}
