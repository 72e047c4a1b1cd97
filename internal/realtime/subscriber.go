package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrNotConnected is returned when joining or leaving a group while the
// transport is down; callers must Reconnect first.
var ErrNotConnected = errors.New("realtime: subscriber not connected")

// JobState is the client-side view of one job, rebuilt from inbound events.
type JobState struct {
	JobID              string            `json:"jobId"`
	Status             string            `json:"status"`
	ProgressPercentage float64           `json:"progressPercentage"`
	CurrentOperation   string            `json:"currentOperation"`
	ProcessedRecords   int               `json:"processedRecords"`
	TotalRecords       int               `json:"totalRecords"`
	CurrentFileName    string            `json:"currentFileName"`
	ProcessedFiles     int               `json:"processedFiles"`
	TotalFiles         int               `json:"totalFiles"`
	Message            string            `json:"message,omitempty"`
	Error              string            `json:"error,omitempty"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// Subscriber maintains one progress-channel connection and three maps of job
// state: active jobs still receiving updates, completed jobs, and failed
// jobs. Events arriving for one job never disturb another job's entry.
type Subscriber struct {
	url    string
	dialer *websocket.Dialer

	mu        sync.RWMutex
	ws        *websocket.Conn
	connected bool
	joined    map[string]struct{}
	active    map[string]*JobState
	completed map[string]*JobState
	failed    map[string]*JobState
}

// NewSubscriber creates a Subscriber for the given websocket URL. Call
// Connect before joining any job group.
func NewSubscriber(url string) *Subscriber {
	return &Subscriber{
		url:       url,
		dialer:    websocket.DefaultDialer,
		joined:    make(map[string]struct{}),
		active:    make(map[string]*JobState),
		completed: make(map[string]*JobState),
		failed:    make(map[string]*JobState),
	}
}

// Connect establishes the transport and starts the read loop.
func (s *Subscriber) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return nil
	}
	ws, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	s.ws = ws
	s.connected = true
	go s.readLoop(ws)
	return nil
}

// Reconnect re-establishes the transport after a disconnect and re-joins
// every job group that was being tracked when the connection dropped.
func (s *Subscriber) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	if s.ws != nil {
		s.ws.Close()
		s.ws = nil
	}
	s.connected = false
	ws, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.ws = ws
	s.connected = true
	rejoin := make([]string, 0, len(s.joined))
	for jobID := range s.joined {
		rejoin = append(rejoin, jobID)
	}
	s.mu.Unlock()

	go s.readLoop(ws)
	for _, jobID := range rejoin {
		if err := s.send(clientFrame{Action: "join", JobID: jobID}); err != nil {
			return err
		}
	}
	return nil
}

// Join subscribes to a job's event group. Fails when disconnected.
func (s *Subscriber) Join(jobID string) error {
	if err := s.send(clientFrame{Action: "join", JobID: jobID}); err != nil {
		return err
	}
	s.mu.Lock()
	s.joined[jobID] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Leave unsubscribes from a job's event group.
func (s *Subscriber) Leave(jobID string) error {
	if err := s.send(clientFrame{Action: "leave", JobID: jobID}); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.joined, jobID)
	s.mu.Unlock()
	return nil
}

// Connected reports transport health.
func (s *Subscriber) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Close tears down the transport.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	if s.ws == nil {
		return nil
	}
	err := s.ws.Close()
	s.ws = nil
	return err
}

// Active returns a snapshot of jobs still receiving updates.
func (s *Subscriber) Active() map[string]JobState { return s.snapshot(s.active) }

// Completed returns a snapshot of successfully finished jobs.
func (s *Subscriber) Completed() map[string]JobState { return s.snapshot(s.completed) }

// Failed returns a snapshot of failed jobs.
func (s *Subscriber) Failed() map[string]JobState { return s.snapshot(s.failed) }

func (s *Subscriber) snapshot(m map[string]*JobState) map[string]JobState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]JobState, len(m))
	for id, state := range m {
		out[id] = *state
	}
	return out
}

func (s *Subscriber) send(frame clientFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || s.ws == nil {
		return ErrNotConnected
	}
	return s.ws.WriteJSON(frame)
}

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func (s *Subscriber) readLoop(ws *websocket.Conn) {
	for {
		var env inboundEnvelope
		if err := ws.ReadJSON(&env); err != nil {
			s.mu.Lock()
			if s.ws == ws {
				s.connected = false
			}
			s.mu.Unlock()
			return
		}
		s.dispatch(env)
	}
}

func (s *Subscriber) dispatch(env inboundEnvelope) {
	switch env.Event {
	case EventJobStarted:
		var e JobStarted
		if json.Unmarshal(env.Data, &e) != nil {
			return
		}
		s.mu.Lock()
		s.active[e.JobID] = &JobState{
			JobID:      e.JobID,
			Status:     "started",
			TotalFiles: e.TotalFiles,
			UpdatedAt:  e.StartTime,
		}
		s.mu.Unlock()

	case EventProgressUpdate:
		var e ProgressUpdate
		if json.Unmarshal(env.Data, &e) != nil {
			return
		}
		s.mu.Lock()
		s.active[e.JobID] = &JobState{
			JobID:              e.JobID,
			Status:             e.Status,
			ProgressPercentage: e.ProgressPercentage,
			CurrentOperation:   e.CurrentOperation,
			ProcessedRecords:   e.ProcessedRecords,
			TotalRecords:       e.TotalRecords,
			CurrentFileName:    e.CurrentFileName,
			ProcessedFiles:     e.ProcessedFiles,
			TotalFiles:         e.TotalFiles,
			UpdatedAt:          e.Timestamp,
		}
		s.mu.Unlock()

	case EventJobCompleted:
		var e JobCompleted
		if json.Unmarshal(env.Data, &e) != nil {
			return
		}
		s.finish(e.JobID, func(state *JobState) {
			state.Status = "completed"
			state.Message = e.Message
			state.UpdatedAt = e.CompletedAt
			dest := s.completed
			if !e.Success {
				state.Status = "failed"
				dest = s.failed
			}
			dest[e.JobID] = state
		})

	case EventJobError:
		var e JobError
		if json.Unmarshal(env.Data, &e) != nil {
			return
		}
		s.finish(e.JobID, func(state *JobState) {
			state.Status = "failed"
			state.Error = e.Error
			state.UpdatedAt = e.Timestamp
			s.failed[e.JobID] = state
		})
	}
}

// finish moves a job out of the active map and leaves its group. Leaving is
// the cleanup that must not be skipped or group subscriptions leak on the
// server.
func (s *Subscriber) finish(jobID string, move func(*JobState)) {
	s.mu.Lock()
	state, ok := s.active[jobID]
	if !ok {
		state = &JobState{JobID: jobID}
	}
	delete(s.active, jobID)
	move(state)
	s.mu.Unlock()

	_ = s.Leave(jobID)
}
