package domain

import "time"

// JobKind identifies which upload strategy created a job.
type JobKind string

const (
	JobKindDirect   JobKind = "direct"
	JobKindProgress JobKind = "progress"
	JobKindQueued   JobKind = "queued"
)

// JobStatus represents the status of a bulk upload job.
type JobStatus string

const (
	JobStatusQueued              JobStatus = "queued"
	JobStatusProcessing          JobStatus = "processing"
	JobStatusCompleted           JobStatus = "completed"
	JobStatusCompletedWithErrors JobStatus = "completed_with_errors"
	JobStatusFailed              JobStatus = "failed"
	JobStatusCancelled           JobStatus = "cancelled"
)

// FileStatus represents the status of one file within a job.
type FileStatus string

const (
	FileStatusQueued     FileStatus = "queued"
	FileStatusProcessing FileStatus = "processing"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusFailed     FileStatus = "failed"
	FileStatusSkipped    FileStatus = "skipped"
	FileStatusCancelled  FileStatus = "cancelled"
)

// RowError represents a per-row error during processing.
type RowError struct {
	FileName string `json:"file_name,omitempty"`
	Row      int    `json:"row"`
	Field    string `json:"field,omitempty"`
	Reason   string `json:"reason"`
}

// ProcessingResult is the outcome of processing a single file.
type ProcessingResult struct {
	FileName         string     `json:"file_name"`
	FileIndex        int        `json:"file_index"`
	TotalFiles       int        `json:"total_files"`
	Table            TableType  `json:"table_type,omitempty"`
	ProcessedRecords int        `json:"processed_records"`
	FailedRecords    int        `json:"failed_records"`
	TotalRecords     int        `json:"total_records"`
	Cancelled        bool       `json:"cancelled,omitempty"`
	Aborted          bool       `json:"aborted,omitempty"`
	Errors           []RowError `json:"errors,omitempty"`
}

// MultiFileResult aggregates ProcessingResults across one multi-file request.
type MultiFileResult struct {
	TotalFiles       int                `json:"total_files"`
	ProcessedFiles   int                `json:"processed_files"`
	FailedFiles      int                `json:"failed_files"`
	ProcessedRecords int                `json:"processed_records"`
	FailedRecords    int                `json:"failed_records"`
	TotalRecords     int                `json:"total_records"`
	Files            []ProcessingResult `json:"files"`
}

// QueuedFile is one file's progress state within a queued job. It is mutated
// only by the queue's drain loop; the payload is released once the file has
// been processed so peak memory stays bounded for large batches.
type QueuedFile struct {
	FileName         string     `json:"file_name"`
	Payload          []byte     `json:"-"`
	Status           FileStatus `json:"status"`
	ProcessedRecords int        `json:"processed_records"`
	FailedRecords    int        `json:"failed_records"`
	TotalRecords     int        `json:"total_records"`
	Errors           []RowError `json:"errors,omitempty"`
	QueuedAt         time.Time  `json:"queued_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// Job is one logical bulk upload request spanning one or more files.
type Job struct {
	ID              string        `json:"id"`
	Kind            JobKind       `json:"kind"`
	UserID          string        `json:"user_id"`
	TotalFiles      int           `json:"total_files"`
	Status          JobStatus     `json:"status"`
	IgnoreRowErrors bool          `json:"ignore_row_errors"`
	ContinueOnError bool          `json:"continue_on_error"`
	Files           []*QueuedFile `json:"files"`
	CreatedAt       time.Time     `json:"created_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}

// Terminal reports whether the job has reached a terminal status.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusCompletedWithErrors, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// UploadHistoryRecord is the durable row written once per completed or failed
// file. It is never mutated after creation.
type UploadHistoryRecord struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	TableType        string        `json:"table_type"`
	FileName         string        `json:"file_name"`
	TotalRecords     int           `json:"total_records"`
	ProcessedRecords int           `json:"processed_records"`
	FailedRecords    int           `json:"failed_records"`
	Status           string        `json:"status"`
	Duration         time.Duration `json:"duration_ms"`
	ErrorDetail      *string       `json:"error_detail,omitempty"`
	UploadedAt       time.Time     `json:"uploaded_at"`
}

// HistoryStatus derives the history status string for a ProcessingResult.
func (r ProcessingResult) HistoryStatus() string {
	switch {
	case r.Cancelled:
		return string(JobStatusCancelled)
	case r.Aborted:
		return string(JobStatusFailed)
	case r.TotalRecords == 0 && len(r.Errors) > 0:
		return string(JobStatusFailed)
	case r.FailedRecords == r.TotalRecords && r.TotalRecords > 0:
		return string(JobStatusFailed)
	case r.FailedRecords > 0:
		return string(JobStatusCompletedWithErrors)
	default:
		return string(JobStatusCompleted)
	}
}
