package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"accessgate/internal/cancel"
	"accessgate/internal/domain"
	"accessgate/internal/logger"
	"accessgate/internal/metrics"
	"accessgate/internal/parser"
	"accessgate/internal/processor"
	"accessgate/internal/queue"
	"accessgate/internal/realtime"
	"accessgate/internal/repository"
)

// UploadFile is one file received from a multipart request, fully buffered.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadOptions carries the per-request flags shared by all strategies.
type UploadOptions struct {
	UserID          string
	IgnoreRowErrors bool
	ContinueOnError bool

	// JobID lets the progress strategy accept a caller-chosen identifier.
	JobID string
}

// QueuedResult is the immediate acknowledgement of an asynchronous upload.
type QueuedResult struct {
	JobID      string `json:"job_id"`
	TotalFiles int    `json:"total_files"`
	Message    string `json:"message"`
}

// UploadService implements the four upload strategies on top of the shared
// file pipeline.
type UploadService struct {
	processor *processor.Processor
	history   repository.HistoryRepository
	publisher realtime.Publisher
	registry  *cancel.Registry
	queue     *queue.Service
}

// NewUploadService wires the upload strategies.
func NewUploadService(proc *processor.Processor, history repository.HistoryRepository, pub realtime.Publisher, registry *cancel.Registry, q *queue.Service) *UploadService {
	if pub == nil {
		pub = realtime.NopPublisher{}
	}
	return &UploadService{
		processor: proc,
		history:   history,
		publisher: pub,
		registry:  registry,
		queue:     q,
	}
}

// UploadDirect processes one file synchronously with no progress events.
func (s *UploadService) UploadDirect(ctx context.Context, file UploadFile, opts UploadOptions) (domain.ProcessingResult, error) {
	result, err := s.runFile(ctx, file, opts, "", 0, 1, 0)
	metrics.JobsCompleted.WithLabelValues(string(domain.JobKindDirect), result.HistoryStatus()).Inc()
	return result, err
}

// UploadMultiple processes files strictly in request order and aggregates the
// per-file outcomes. With ContinueOnError unset, the first failed file stops
// the batch; infrastructure failures and cancellation always stop it.
func (s *UploadService) UploadMultiple(ctx context.Context, files []UploadFile, opts UploadOptions) (domain.MultiFileResult, error) {
	agg := domain.MultiFileResult{TotalFiles: len(files)}

	for i, file := range files {
		result, err := s.runFile(ctx, file, opts, "", i, len(files), agg.ProcessedFiles)
		agg.Files = append(agg.Files, result)
		agg.ProcessedRecords += result.ProcessedRecords
		agg.FailedRecords += result.FailedRecords
		agg.TotalRecords += result.TotalRecords

		switch {
		case err == nil:
			agg.ProcessedFiles++
		case errors.Is(err, repository.ErrUnavailable), errors.Is(err, context.Canceled):
			agg.FailedFiles++
			return agg, err
		default:
			agg.FailedFiles++
			if !opts.ContinueOnError {
				return agg, nil
			}
		}
	}
	return agg, nil
}

// UploadWithProgress processes one file synchronously while publishing
// progress events under a job id. The cancellation-registry entry is removed
// on every exit path.
func (s *UploadService) UploadWithProgress(ctx context.Context, file UploadFile, opts UploadOptions) (string, domain.ProcessingResult, error) {
	jobID := opts.JobID
	if jobID == "" {
		jobID = realtime.GenerateJobID()
	}

	jobCtx, err := s.registry.Create(ctx, jobID)
	if err != nil {
		return "", domain.ProcessingResult{}, err
	}
	defer s.registry.Remove(jobID)

	start := time.Now()
	s.publisher.PublishStarted(realtime.JobStarted{
		JobID:                 jobID,
		TotalFiles:            1,
		EstimatedTotalRecords: realtime.EstimateRecords(len(file.Data)),
		StartTime:             start.UTC(),
	})

	result, err := s.runFile(jobCtx, file, opts, jobID, 0, 1, 0)
	metrics.JobsCompleted.WithLabelValues(string(domain.JobKindProgress), result.HistoryStatus()).Inc()

	switch {
	case errors.Is(err, repository.ErrUnavailable):
		s.publisher.PublishError(realtime.JobError{
			JobID:     jobID,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		})
	case errors.Is(err, context.Canceled):
		s.publisher.PublishCompleted(realtime.JobCompleted{
			JobID:           jobID,
			Success:         false,
			Message:         "Job cancelled",
			Data:            result,
			CompletedAt:     time.Now().UTC(),
			TotalDurationMS: time.Since(start).Milliseconds(),
		})
	default:
		success := err == nil && result.FailedRecords == 0
		message := "File processed successfully"
		if !success {
			message = "File processed with errors"
		}
		s.publisher.PublishCompleted(realtime.JobCompleted{
			JobID:           jobID,
			Success:         success,
			Message:         message,
			Data:            result,
			CompletedAt:     time.Now().UTC(),
			TotalDurationMS: time.Since(start).Milliseconds(),
		})
	}

	return jobID, result, err
}

// UploadQueued validates file extensions up front, hands the batch to the
// queue service, and returns immediately.
func (s *UploadService) UploadQueued(ctx context.Context, files []UploadFile, opts UploadOptions) (QueuedResult, error) {
	for _, file := range files {
		if _, err := parser.FormatForExtension(filepath.Ext(file.Name)); err != nil {
			return QueuedResult{}, fmt.Errorf("%s: %w", file.Name, err)
		}
	}

	queued := make([]queue.File, len(files))
	for i, f := range files {
		queued[i] = queue.File{Name: f.Name, Data: f.Data}
	}
	jobID, err := s.queue.Enqueue(ctx, queue.JobRequest{
		Files:           queued,
		UserID:          opts.UserID,
		IgnoreRowErrors: opts.IgnoreRowErrors,
		ContinueOnError: opts.ContinueOnError,
	})
	if err != nil {
		return QueuedResult{}, err
	}
	return QueuedResult{JobID: jobID, TotalFiles: len(files), Message: "Queued"}, nil
}

// CancelJob signals a running job regardless of which strategy started it.
func (s *UploadService) CancelJob(jobID string) bool {
	return s.registry.Cancel(jobID)
}

// History lists the caller's durable upload records, newest first.
func (s *UploadService) History(ctx context.Context, userID string, page, pageSize int) ([]domain.UploadHistoryRecord, int, error) {
	return s.history.List(ctx, userID, page, pageSize)
}

// runFile executes the shared pipeline for one file and writes its history
// record.
func (s *UploadService) runFile(ctx context.Context, file UploadFile, opts UploadOptions, jobID string, fileIndex, totalFiles, processedFiles int) (domain.ProcessingResult, error) {
	start := time.Now()
	result, err := s.processor.ProcessFile(ctx, processor.FileRequest{
		Name:            file.Name,
		Data:            file.Data,
		UserID:          opts.UserID,
		IgnoreRowErrors: opts.IgnoreRowErrors,
		JobID:           jobID,
		FileIndex:       fileIndex,
		TotalFiles:      totalFiles,
		ProcessedFiles:  processedFiles,
	})

	record := &domain.UploadHistoryRecord{
		UserID:           opts.UserID,
		TableType:        string(result.Table),
		FileName:         file.Name,
		TotalRecords:     result.TotalRecords,
		ProcessedRecords: result.ProcessedRecords,
		FailedRecords:    result.FailedRecords,
		Status:           result.HistoryStatus(),
		Duration:         time.Since(start),
		UploadedAt:       time.Now().UTC(),
	}
	if len(result.Errors) > 0 {
		detail := result.Errors[0].Reason
		record.ErrorDetail = &detail
	}
	// History must outlive the upload's context: a cancelled or disconnected
	// request still gets its durable row, matching the queue path.
	if histErr := s.history.Record(context.WithoutCancel(ctx), record); histErr != nil {
		logger.Error("failed to record upload history", "file", file.Name, "error", histErr.Error())
	}

	return result, err
}
