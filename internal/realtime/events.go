// Package realtime implements the group-scoped progress channel: a websocket
// hub on the server side and a subscribing client that rebuilds job state
// from the event stream.
package realtime

import (
	"time"

	"github.com/google/uuid"

	"accessgate/internal/domain"
)

// Named events pushed over the progress channel.
const (
	EventJobStarted     = "JobStarted"
	EventProgressUpdate = "ProgressUpdate"
	EventJobCompleted   = "JobCompleted"
	EventJobError       = "JobError"
)

// JobStarted announces that a job began draining.
type JobStarted struct {
	JobID                 string    `json:"jobId"`
	TotalFiles            int       `json:"totalFiles"`
	EstimatedTotalRecords int       `json:"estimatedTotalRecords"`
	StartTime             time.Time `json:"startTime"`
}

// ProgressUpdate carries running counts while a job processes rows.
type ProgressUpdate struct {
	JobID              string            `json:"jobId"`
	ProgressPercentage float64           `json:"progressPercentage"`
	Status             string            `json:"status"`
	CurrentOperation   string            `json:"currentOperation"`
	ProcessedRecords   int               `json:"processedRecords"`
	TotalRecords       int               `json:"totalRecords"`
	CurrentFileName    string            `json:"currentFileName"`
	ProcessedFiles     int               `json:"processedFiles"`
	TotalFiles         int               `json:"totalFiles"`
	Errors             []domain.RowError `json:"errors,omitempty"`
	Timestamp          time.Time         `json:"timestamp"`
}

// JobCompleted is the terminal success/failure event for a job.
type JobCompleted struct {
	JobID           string      `json:"jobId"`
	Success         bool        `json:"success"`
	Message         string      `json:"message"`
	Data            interface{} `json:"data,omitempty"`
	CompletedAt     time.Time   `json:"completedAt"`
	TotalDurationMS int64       `json:"totalDuration"`
}

// JobError reports an unexpected failure.
type JobError struct {
	JobID     string    `json:"jobId"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Envelope is the wire frame for server-pushed events.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher broadcasts progress events to the subscribers of one job.
// Publishing never blocks row processing on slow subscribers.
type Publisher interface {
	PublishStarted(e JobStarted)
	PublishUpdate(e ProgressUpdate)
	PublishCompleted(e JobCompleted)
	PublishError(e JobError)
}

// NopPublisher discards all events. Used by strategies that report no
// progress.
type NopPublisher struct{}

func (NopPublisher) PublishStarted(JobStarted)     {}
func (NopPublisher) PublishUpdate(ProgressUpdate)  {}
func (NopPublisher) PublishCompleted(JobCompleted) {}
func (NopPublisher) PublishError(JobError)         {}

// GenerateJobID returns a new opaque job identifier.
func GenerateJobID() string {
	return uuid.NewString()
}

// estimatedBytesPerRecord sizes the JobStarted preview. Exact totals follow
// in ProgressUpdate events once files are parsed.
const estimatedBytesPerRecord = 100

// EstimateRecords converts a payload size into a rough record count for the
// JobStarted announcement.
func EstimateRecords(totalBytes int) int {
	if totalBytes <= 0 {
		return 0
	}
	if totalBytes < estimatedBytesPerRecord {
		return 1
	}
	return totalBytes / estimatedBytesPerRecord
}
