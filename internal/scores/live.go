package scores

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	liveSendBuffer = 16
	liveWriteWait  = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Spectators are read-only.
		return true
	},
}

// LiveMessage is what spectators receive on the feed.
type LiveMessage struct {
	Type   string  `json:"type"` // "hello" or "score"
	Record *Record `json:"record,omitempty"`
}

// liveConn wraps one spectator socket and its outgoing queue.
type liveConn struct {
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans new leaderboard entries out to connected spectators.
type Hub struct {
	clients map[*liveConn]struct{}
	mutex   sync.RWMutex
	logger  *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[*liveConn]struct{}),
		logger:  logger,
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and streams records until the peer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade spectator", "error", err)
		return
	}
	c := &liveConn{ws: ws, send: make(chan []byte, liveSendBuffer)}
	if hello, err := json.Marshal(LiveMessage{Type: "hello"}); err == nil {
		c.send <- hello
	}
	h.add(c)
	h.logger.Debug("spectator joined", "remote", r.RemoteAddr, "count", h.Count())

	go c.writePump()
	c.readPump()

	h.remove(c)
	h.logger.Debug("spectator left", "remote", r.RemoteAddr, "count", h.Count())
}

func (h *Hub) add(c *liveConn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[c] = struct{}{}
}

// remove drops a spectator and closes its queue, which stops writePump.
func (h *Hub) remove(c *liveConn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Broadcast sends rec to every spectator. Spectators whose queue is full
// are disconnected rather than allowed to stall the server.
func (h *Hub) Broadcast(rec Record) {
	msg, err := json.Marshal(LiveMessage{Type: "score", Record: &rec})
	if err != nil {
		h.logger.Error("failed to encode live record", "error", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow spectator")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards inbound frames and returns when the socket closes.
func (c *liveConn) readPump() {
	defer c.ws.Close()
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains the send queue onto the socket.
func (c *liveConn) writePump() {
	defer c.ws.Close()
	for message := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.ws.SetWriteDeadline(time.Now().Add(liveWriteWait))
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}
