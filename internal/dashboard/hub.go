// Package dashboard publishes live run events over a WebSocket connection
// so an operator can watch an authentication run in progress. It is purely
// observational: the runner never blocks on it, and the absence of a
// connected client is a no-op. One browser tab watches one run at a time.
package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/DigeeX/raider/internal/runner"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// Event is one message published to the dashboard.
type Event struct {
	Type      string `json:"type"` // "stage" or "run_ended"
	RunID     string `json:"run_id"`
	Stage     string `json:"stage,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Hub manages one active WebSocket connection and implements
// runner.EventSink.
type Hub struct {
	client *client
	mu     sync.RWMutex

	runID string
	now   func() int64
}

// New builds a Hub tagged with a fresh run ID (google/uuid) for log
// correlation across concurrent runs.
func New() *Hub {
	return &Hub{runID: uuid.NewString(), now: func() int64 { return time.Now().Unix() }}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// ServeHTTP upgrades the request to a WebSocket and makes it the hub's
// active client, disconnecting any previous one.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WARN] dashboard: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 64)}

	h.mu.Lock()
	if h.client != nil {
		close(h.client.send)
	}
	h.client = c
	h.mu.Unlock()

	go h.writePump(c)
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) publish(ev Event) {
	ev.RunID = h.runID
	ev.Timestamp = h.now()
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.RLock()
	c := h.client
	h.mu.RUnlock()
	if c == nil {
		return
	}

	select {
	case c.send <- data:
	default: // slow/absent reader: drop rather than block the run
	}
}

// StageEntered implements runner.EventSink.
func (h *Hub) StageEntered(stage string) {
	h.publish(Event{Type: "stage", Stage: stage})
}

// RunEnded implements runner.EventSink.
func (h *Hub) RunEnded(result runner.Result) {
	outcome := "ok"
	if result.Outcome == runner.ErrorOutcome {
		outcome = "error"
	}
	h.publish(Event{Type: "run_ended", Outcome: outcome, Message: result.Message, Stage: result.LastFlow})
}
