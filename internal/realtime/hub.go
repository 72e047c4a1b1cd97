package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"accessgate/internal/logger"
	"accessgate/internal/metrics"
)

const (
	// sendBuffer bounds the per-connection outbound queue. A subscriber
	// that falls further behind than this starts missing events
	// (at-most-once delivery, no replay).
	sendBuffer = 32

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// clientFrame is what subscribers send to manage group membership.
type clientFrame struct {
	Action string `json:"action"`
	JobID  string `json:"jobId"`
}

// Hub fans progress events out to websocket subscribers grouped by job id.
// Events for one job are never delivered to subscribers of another.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*connection]struct{}

	upgrader websocket.Upgrader
}

type connection struct {
	ws     *websocket.Conn
	send   chan Envelope
	joined map[string]struct{} // guarded by hub.mu
}

// NewHub creates a Hub with no subscribers.
func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[*connection]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and services join/leave frames until
// the client disconnects.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	conn := &connection{
		ws:     ws,
		send:   make(chan Envelope, sendBuffer),
		joined: make(map[string]struct{}),
	}
	metrics.WebsocketConnections.Inc()

	go h.writePump(conn)
	h.readPump(conn)
	return nil
}

func (h *Hub) readPump(conn *connection) {
	defer func() {
		h.dropConnection(conn)
		conn.ws.Close()
		metrics.WebsocketConnections.Dec()
	}()
	conn.ws.SetReadLimit(1024)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame clientFrame
		if err := conn.ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "error", err.Error())
			}
			return
		}
		if frame.JobID == "" {
			continue
		}
		switch frame.Action {
		case "join":
			h.join(frame.JobID, conn)
		case "leave":
			h.leave(frame.JobID, conn)
		}
	}
}

func (h *Hub) writePump(conn *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.ws.Close()
	}()
	for {
		select {
		case env, ok := <-conn.send:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.ws.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.ws.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) join(jobID string, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.groups[jobID] == nil {
		h.groups[jobID] = make(map[*connection]struct{})
	}
	h.groups[jobID][conn] = struct{}{}
	conn.joined[jobID] = struct{}{}
}

func (h *Hub) leave(jobID string, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(jobID, conn)
}

func (h *Hub) dropConnection(conn *connection) {
	h.mu.Lock()
	for jobID := range conn.joined {
		h.removeLocked(jobID, conn)
	}
	h.mu.Unlock()
	close(conn.send)
}

func (h *Hub) removeLocked(jobID string, conn *connection) {
	if subs, ok := h.groups[jobID]; ok {
		delete(subs, conn)
		if len(subs) == 0 {
			delete(h.groups, jobID)
		}
	}
	delete(conn.joined, jobID)
}

// publish delivers an envelope to every subscriber of the job. Slow
// subscribers are skipped rather than blocking the publisher.
func (h *Hub) publish(jobID string, env Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.groups[jobID] {
		select {
		case conn.send <- env:
		default:
			metrics.WebsocketDroppedEvents.Inc()
		}
	}
	metrics.ProgressEventsPublished.WithLabelValues(env.Event).Inc()
}

// PublishStarted implements Publisher.
func (h *Hub) PublishStarted(e JobStarted) {
	h.publish(e.JobID, Envelope{Event: EventJobStarted, Data: e})
}

// PublishUpdate implements Publisher.
func (h *Hub) PublishUpdate(e ProgressUpdate) {
	h.publish(e.JobID, Envelope{Event: EventProgressUpdate, Data: e})
}

// PublishCompleted implements Publisher.
func (h *Hub) PublishCompleted(e JobCompleted) {
	h.publish(e.JobID, Envelope{Event: EventJobCompleted, Data: e})
}

// PublishError implements Publisher.
func (h *Hub) PublishError(e JobError) {
	h.publish(e.JobID, Envelope{Event: EventJobError, Data: e})
}

// SubscriberCount reports how many connections are joined to a job.
func (h *Hub) SubscriberCount(jobID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[jobID])
}
