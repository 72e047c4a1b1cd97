// Package queue implements the asynchronous upload path: jobs are accepted
// immediately and their files drained strictly in order by a per-job
// goroutine.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"accessgate/internal/cancel"
	"accessgate/internal/domain"
	"accessgate/internal/logger"
	"accessgate/internal/metrics"
	"accessgate/internal/processor"
	"accessgate/internal/realtime"
	"accessgate/internal/repository"
)

// ErrNoFiles is returned when a job is enqueued with nothing to process.
var ErrNoFiles = errors.New("queue: no files in request")

// File is one uploaded file held until the drain loop reaches it.
type File struct {
	Name string
	Data []byte
}

// JobRequest describes one job to enqueue.
type JobRequest struct {
	Files           []File
	UserID          string
	IgnoreRowErrors bool
	ContinueOnError bool
}

// Service accepts jobs and drains each one sequentially in its own goroutine.
// Job state lives in process memory; durable completion records go to the
// history repository.
type Service struct {
	processor *processor.Processor
	history   repository.HistoryRepository
	publisher realtime.Publisher
	registry  *cancel.Registry

	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewService creates a queue Service. A nil publisher disables progress
// events.
func NewService(proc *processor.Processor, history repository.HistoryRepository, pub realtime.Publisher, registry *cancel.Registry) *Service {
	if pub == nil {
		pub = realtime.NopPublisher{}
	}
	return &Service{
		processor: proc,
		history:   history,
		publisher: pub,
		registry:  registry,
		jobs:      make(map[string]*domain.Job),
	}
}

// Enqueue registers a job, starts its drain goroutine, and returns the job id
// without waiting for any file to be processed. The job runs on a context
// detached from the request so it survives the caller's disconnect.
func (s *Service) Enqueue(ctx context.Context, req JobRequest) (string, error) {
	if len(req.Files) == 0 {
		return "", ErrNoFiles
	}

	jobID := realtime.GenerateJobID()
	jobCtx, err := s.registry.Create(context.WithoutCancel(ctx), jobID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	files := make([]*domain.QueuedFile, len(req.Files))
	for i, f := range req.Files {
		files[i] = &domain.QueuedFile{
			FileName: f.Name,
			Payload:  f.Data,
			Status:   domain.FileStatusQueued,
			QueuedAt: now,
		}
	}
	job := &domain.Job{
		ID:              jobID,
		Kind:            domain.JobKindQueued,
		UserID:          req.UserID,
		TotalFiles:      len(files),
		Status:          domain.JobStatusQueued,
		IgnoreRowErrors: req.IgnoreRowErrors,
		ContinueOnError: req.ContinueOnError,
		Files:           files,
		CreatedAt:       now,
	}

	s.mu.Lock()
	s.jobs[jobID] = job
	s.mu.Unlock()

	metrics.JobsInFlight.Inc()
	logger.Info("job enqueued", "job_id", jobID, "user_id", req.UserID, "files", len(files))

	go s.drain(jobCtx, job)
	return jobID, nil
}

// Status returns a point-in-time copy of the job, false when unknown.
func (s *Service) Status(jobID string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return domain.Job{}, false
	}
	return snapshotJob(job), true
}

// Cancel requests cancellation of a running or queued job. It returns false
// when the job is unknown or already terminal.
func (s *Service) Cancel(jobID string) bool {
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	var terminal bool
	if ok {
		terminal = job.Status.Terminal()
	}
	s.mu.RUnlock()
	if !ok || terminal {
		return false
	}
	return s.registry.Cancel(jobID)
}

// drain processes the job's files strictly in queue order. It owns all
// mutations of the job after Enqueue returns.
func (s *Service) drain(ctx context.Context, job *domain.Job) {
	start := time.Now()
	s.setJobStatus(job, domain.JobStatusProcessing)
	var pendingBytes int
	for _, f := range job.Files {
		pendingBytes += len(f.Payload)
	}
	s.publisher.PublishStarted(realtime.JobStarted{
		JobID:                 job.ID,
		TotalFiles:            job.TotalFiles,
		EstimatedTotalRecords: realtime.EstimateRecords(pendingBytes),
		StartTime:             start.UTC(),
	})

	var (
		infraErr  error
		cancelled bool
		failed    bool
		anyRowErr bool
		completed int
	)

	for i, file := range job.Files {
		if ctx.Err() != nil {
			cancelled = true
			s.markRemaining(job, i, domain.FileStatusCancelled)
			break
		}

		fileStart := time.Now()
		s.updateFile(job, file, func(f *domain.QueuedFile) {
			f.Status = domain.FileStatusProcessing
			t := fileStart.UTC()
			f.StartedAt = &t
		})

		result, err := s.processor.ProcessFile(ctx, processor.FileRequest{
			Name:            file.FileName,
			Data:            file.Payload,
			UserID:          job.UserID,
			IgnoreRowErrors: job.IgnoreRowErrors,
			JobID:           job.ID,
			FileIndex:       i,
			TotalFiles:      job.TotalFiles,
			ProcessedFiles:  completed,
		})

		status := fileStatus(result, err)
		s.updateFile(job, file, func(f *domain.QueuedFile) {
			f.Payload = nil
			f.Status = status
			f.ProcessedRecords = result.ProcessedRecords
			f.FailedRecords = result.FailedRecords
			f.TotalRecords = result.TotalRecords
			f.Errors = result.Errors
			t := time.Now().UTC()
			f.CompletedAt = &t
		})
		s.recordHistory(job, result, time.Since(fileStart))
		completed++

		switch {
		case err == nil:
			if result.FailedRecords > 0 {
				anyRowErr = true
			}
		case errors.Is(err, context.Canceled):
			cancelled = true
			s.markRemaining(job, i+1, domain.FileStatusCancelled)
		case errors.Is(err, repository.ErrUnavailable):
			infraErr = err
			s.markRemaining(job, i+1, domain.FileStatusSkipped)
		default:
			// Structural failure or fail-fast row error.
			failed = true
			if !job.ContinueOnError {
				s.markRemaining(job, i+1, domain.FileStatusSkipped)
			}
		}
		if cancelled || infraErr != nil {
			break
		}
		if failed && !job.ContinueOnError {
			break
		}
	}

	final := finalStatus(cancelled, infraErr != nil, failed, job.ContinueOnError, anyRowErr)
	s.finishJob(job, final)
	metrics.JobsInFlight.Dec()
	metrics.JobsCompleted.WithLabelValues(string(job.Kind), string(final)).Inc()
	s.registry.Remove(job.ID)

	elapsed := time.Since(start)
	if infraErr != nil {
		logger.Error("job aborted", "job_id", job.ID, "error", infraErr.Error())
		s.publisher.PublishError(realtime.JobError{
			JobID:     job.ID,
			Error:     infraErr.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	logger.Info("job finished", "job_id", job.ID, "status", string(final), "duration_ms", elapsed.Milliseconds())
	s.publisher.PublishCompleted(realtime.JobCompleted{
		JobID:           job.ID,
		Success:         final == domain.JobStatusCompleted || final == domain.JobStatusCompletedWithErrors,
		Message:         completionMessage(final),
		Data:            s.statusData(job),
		CompletedAt:     time.Now().UTC(),
		TotalDurationMS: elapsed.Milliseconds(),
	})
}

func fileStatus(result domain.ProcessingResult, err error) domain.FileStatus {
	switch {
	case err == nil:
		return domain.FileStatusCompleted
	case errors.Is(err, context.Canceled):
		return domain.FileStatusCancelled
	default:
		return domain.FileStatusFailed
	}
}

func finalStatus(cancelled, infra, failed, continueOnError, anyRowErr bool) domain.JobStatus {
	switch {
	case cancelled:
		return domain.JobStatusCancelled
	case infra:
		return domain.JobStatusFailed
	case failed && !continueOnError:
		return domain.JobStatusFailed
	case failed || anyRowErr:
		return domain.JobStatusCompletedWithErrors
	default:
		return domain.JobStatusCompleted
	}
}

func completionMessage(status domain.JobStatus) string {
	switch status {
	case domain.JobStatusCompleted:
		return "All files processed successfully"
	case domain.JobStatusCompletedWithErrors:
		return "Processing finished with errors"
	case domain.JobStatusCancelled:
		return "Job cancelled"
	default:
		return "Processing failed"
	}
}

func (s *Service) recordHistory(job *domain.Job, result domain.ProcessingResult, elapsed time.Duration) {
	record := &domain.UploadHistoryRecord{
		UserID:           job.UserID,
		TableType:        string(result.Table),
		FileName:         result.FileName,
		TotalRecords:     result.TotalRecords,
		ProcessedRecords: result.ProcessedRecords,
		FailedRecords:    result.FailedRecords,
		Status:           result.HistoryStatus(),
		Duration:         elapsed,
		UploadedAt:       time.Now().UTC(),
	}
	if len(result.Errors) > 0 {
		detail := result.Errors[0].Reason
		record.ErrorDetail = &detail
	}
	if err := s.history.Record(context.Background(), record); err != nil {
		logger.Error("failed to record upload history", "job_id", job.ID, "file", result.FileName, "error", err.Error())
	}
}

func (s *Service) setJobStatus(job *domain.Job, status domain.JobStatus) {
	s.mu.Lock()
	job.Status = status
	s.mu.Unlock()
}

func (s *Service) finishJob(job *domain.Job, status domain.JobStatus) {
	s.mu.Lock()
	job.Status = status
	t := time.Now().UTC()
	job.CompletedAt = &t
	s.mu.Unlock()
}

func (s *Service) updateFile(job *domain.Job, file *domain.QueuedFile, fn func(*domain.QueuedFile)) {
	s.mu.Lock()
	fn(file)
	s.mu.Unlock()
}

// markRemaining flips every still-queued file from index on to the given
// terminal status.
func (s *Service) markRemaining(job *domain.Job, from int, status domain.FileStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range job.Files[from:] {
		if f.Status == domain.FileStatusQueued {
			f.Status = status
			f.Payload = nil
		}
	}
}

// statusData builds the payload embedded in the JobCompleted event.
func (s *Service) statusData(job *domain.Job) domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotJob(job)
}

func snapshotJob(job *domain.Job) domain.Job {
	out := *job
	out.Files = make([]*domain.QueuedFile, len(job.Files))
	for i, f := range job.Files {
		cp := *f
		cp.Payload = nil
		out.Files[i] = &cp
	}
	return out
}
