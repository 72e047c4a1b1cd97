package service

import (
	"context"

	"accessgate/internal/domain"
)

// Uploader defines the upload strategies exposed to transport handlers.
// Used for dependency injection and mocking in tests.
type Uploader interface {
	// UploadDirect processes one file synchronously without progress events.
	UploadDirect(ctx context.Context, file UploadFile, opts UploadOptions) (domain.ProcessingResult, error)
	// UploadMultiple processes files in order and aggregates per-file results.
	UploadMultiple(ctx context.Context, files []UploadFile, opts UploadOptions) (domain.MultiFileResult, error)
	// UploadWithProgress processes one file while publishing progress events.
	UploadWithProgress(ctx context.Context, file UploadFile, opts UploadOptions) (string, domain.ProcessingResult, error)
	// UploadQueued hands files to the queue and returns immediately.
	UploadQueued(ctx context.Context, files []UploadFile, opts UploadOptions) (QueuedResult, error)
	// CancelJob requests cancellation of a running job.
	CancelJob(jobID string) bool
	// History lists the caller's durable upload records.
	History(ctx context.Context, userID string, page, pageSize int) ([]domain.UploadHistoryRecord, int, error)
}

// JobQueue defines the queued-job operations exposed to transport handlers.
type JobQueue interface {
	// Status returns a point-in-time copy of the job, false when unknown.
	Status(jobID string) (domain.Job, bool)
	// Cancel requests cancellation; false when unknown or already terminal.
	Cancel(jobID string) bool
}
