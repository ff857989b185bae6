package ipc

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// outboundBuffer is the per-connection send backlog. A slow client drops
// messages rather than stalling the tick goroutine.
const outboundBuffer = 16

// WSHub bridges the control protocol onto websocket clients: incoming
// messages join the same FIFO queue as stdio, and every state update is
// broadcast to all connected clients. All writes to one connection go
// through that connection's writer goroutine; gorilla/websocket allows at
// most one concurrent writer per conn.
type WSHub struct {
	queue *Queue

	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte

	startTime time.Time
	lastState StateUpdate
}

// NewWSHub builds a hub feeding the given queue.
func NewWSHub(queue *Queue) *WSHub {
	return &WSHub{
		queue:     queue,
		clients:   map[*websocket.Conn]chan []byte{},
		startTime: time.Now(),
	}
}

// HandleControlWS upgrades the connection and relays messages both ways
// until the client drops.
func (h *WSHub) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	out := make(chan []byte, outboundBuffer)
	h.mu.Lock()
	h.clients[conn] = out
	h.mu.Unlock()

	go writeLoop(conn, out)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		// Safe to close now: senders only enqueue while the conn is still
		// in the map, under the same lock.
		close(out)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := Decode(data)
		if err != nil {
			log.Warn().Err(err).Msg("malformed ws control message")
			h.sendTo(conn, NewError(CodeInternal, "parse error: %v", err))
			continue
		}
		h.queue.Push(msg)
	}
}

// writeLoop is the sole writer for one connection. It exits when the
// outbound channel is closed on disconnect.
func writeLoop(conn *websocket.Conn, out <-chan []byte) {
	for b := range out {
		conn.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("ws write failed")
		}
	}
}

// HandleHealth reports channel liveness and the last broadcast state.
func (h *WSHub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	resp := map[string]any{
		"uptime_s":   time.Since(h.startTime).Seconds(),
		"clients":    len(h.clients),
		"state":      h.lastState.State,
		"frame":      h.lastState.Frame,
		"is_playing": h.lastState.IsPlaying,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// sendTo enqueues a message for one connection's writer.
func (h *WSHub) sendTo(conn *websocket.Conn, msg Message) {
	b, err := Encode(msg)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	out, ok := h.clients[conn]
	if !ok {
		return
	}
	select {
	case out <- b:
	default:
	}
}

// Send broadcasts a message to every connected client's writer.
func (h *WSHub) Send(msg Message) error {
	b, err := Encode(msg)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if msg.Type == TypeStateUpdate && msg.StateUpdate != nil {
		h.lastState = *msg.StateUpdate
	}
	for _, out := range h.clients {
		select {
		case out <- b:
		default:
			// Backlogged client; drop rather than block the tick loop.
		}
	}
	return nil
}
