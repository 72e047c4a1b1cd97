// Package processor persists validated rows for a detected record type while
// honoring cooperative cancellation and publishing progress.
package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"accessgate/internal/detect"
	"accessgate/internal/domain"
	"accessgate/internal/metrics"
	"accessgate/internal/parser"
	"accessgate/internal/realtime"
	"accessgate/internal/repository"
	"accessgate/internal/validator"
)

// ErrFileInvalid is returned when a file fails validation before any row is
// processed.
var ErrFileInvalid = errors.New("processor: file failed validation")

const defaultPublishEvery = 25

// Processor runs the per-file ingestion pipeline.
type Processor struct {
	store     repository.RecordStore
	validator *validator.Validator
	detector  *detect.Detector
	publisher realtime.Publisher

	// publishEvery is the row interval between ProgressUpdate events.
	publishEvery int
}

// New creates a Processor. A nil publisher disables progress events.
func New(store repository.RecordStore, v *validator.Validator, d *detect.Detector, pub realtime.Publisher, publishEvery int) *Processor {
	if pub == nil {
		pub = realtime.NopPublisher{}
	}
	if publishEvery <= 0 {
		publishEvery = defaultPublishEvery
	}
	return &Processor{
		store:        store,
		validator:    v,
		detector:     d,
		publisher:    pub,
		publishEvery: publishEvery,
	}
}

// Request describes one already-parsed file to process.
type Request struct {
	Rows            []domain.ParsedRow
	Table           domain.TableType
	FileName        string
	FileIndex       int
	TotalFiles      int
	ProcessedFiles  int
	UserID          string
	IgnoreRowErrors bool

	// JobID enables progress publishing when non-empty.
	JobID string
}

// FileRequest describes one raw uploaded file.
type FileRequest struct {
	Name            string
	Data            []byte
	UserID          string
	IgnoreRowErrors bool
	JobID           string
	FileIndex       int
	TotalFiles      int
	ProcessedFiles  int
}

// IsStructural reports whether err means the file itself was unusable:
// unsupported or malformed format, unknown record type, or a failed
// file-level validation. Structural failures abort the file with zero rows
// processed.
func IsStructural(err error) bool {
	return errors.Is(err, parser.ErrUnsupportedFormat) ||
		errors.Is(err, parser.ErrMalformed) ||
		errors.Is(err, detect.ErrUnknownTable) ||
		errors.Is(err, detect.ErrAmbiguousTable) ||
		errors.Is(err, ErrFileInvalid)
}

// ProcessFile runs the full pipeline for one file: parse, detect the table
// type, validate the file shape, then process rows. Structural failures are
// recorded in the result's error list and returned as the error.
func (p *Processor) ProcessFile(ctx context.Context, req FileRequest) (domain.ProcessingResult, error) {
	result := domain.ProcessingResult{
		FileName:   req.Name,
		FileIndex:  req.FileIndex,
		TotalFiles: req.TotalFiles,
	}

	ext := filepath.Ext(req.Name)
	format, err := parser.FormatForExtension(ext)
	if err != nil {
		return structuralFailure(result, err)
	}
	fileParser, err := parser.New(format)
	if err != nil {
		return structuralFailure(result, err)
	}
	rows, err := fileParser.Parse(req.Data)
	if err != nil {
		return structuralFailure(result, err)
	}
	table, err := p.detector.Detect(rows)
	if err != nil {
		return structuralFailure(result, err)
	}
	result.Table = table
	if ok, reason := p.validator.ValidateFile(rows, table, ext); !ok {
		return structuralFailure(result, fmt.Errorf("%w: %s", ErrFileInvalid, reason))
	}

	return p.Process(ctx, Request{
		Rows:            rows,
		Table:           table,
		FileName:        req.Name,
		FileIndex:       req.FileIndex,
		TotalFiles:      req.TotalFiles,
		ProcessedFiles:  req.ProcessedFiles,
		UserID:          req.UserID,
		IgnoreRowErrors: req.IgnoreRowErrors,
		JobID:           req.JobID,
	})
}

// Process iterates rows in file order, checking the cancellation context
// between rows. On a row failure with IgnoreRowErrors unset, the remaining
// rows are failed fast. The caller publishes terminal events; Process only
// emits ProgressUpdates.
func (p *Processor) Process(ctx context.Context, req Request) (domain.ProcessingResult, error) {
	result := domain.ProcessingResult{
		FileName:     req.FileName,
		FileIndex:    req.FileIndex,
		TotalFiles:   req.TotalFiles,
		Table:        req.Table,
		TotalRecords: len(req.Rows),
	}

	for i, row := range req.Rows {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			return result, err
		}
		rowNum := i + 1

		if err := p.validator.ValidateRow(req.Table, row); err != nil {
			result.FailedRecords++
			result.Errors = append(result.Errors, validator.ConvertValidationErrors(req.FileName, rowNum, err)...)
			metrics.RecordsProcessed.WithLabelValues(string(req.Table), "failure").Inc()
			if !req.IgnoreRowErrors {
				failRemaining(&result)
				break
			}
			p.maybePublish(req, &result, rowNum)
			continue
		}

		if err := p.store.Insert(ctx, req.Table, row); err != nil {
			if errors.Is(err, repository.ErrUnavailable) {
				result.Aborted = true
				return result, err
			}
			result.FailedRecords++
			result.Errors = append(result.Errors, domain.RowError{
				FileName: req.FileName,
				Row:      rowNum,
				Reason:   err.Error(),
			})
			metrics.RecordsProcessed.WithLabelValues(string(req.Table), "failure").Inc()
			if !req.IgnoreRowErrors {
				failRemaining(&result)
				break
			}
		} else {
			result.ProcessedRecords++
			metrics.RecordsProcessed.WithLabelValues(string(req.Table), "success").Inc()
		}

		p.maybePublish(req, &result, rowNum)
	}

	return result, nil
}

// failRemaining marks every unattempted row as failed so that
// processed + failed == total when a file fails fast.
func failRemaining(result *domain.ProcessingResult) {
	remaining := result.TotalRecords - result.ProcessedRecords - result.FailedRecords
	if remaining > 0 {
		result.FailedRecords += remaining
	}
}

func (p *Processor) maybePublish(req Request, result *domain.ProcessingResult, rowNum int) {
	if req.JobID == "" {
		return
	}
	if rowNum%p.publishEvery != 0 && rowNum != result.TotalRecords {
		return
	}
	percentage := 0.0
	if result.TotalRecords > 0 {
		percentage = float64(rowNum) / float64(result.TotalRecords) * 100
	}
	p.publisher.PublishUpdate(realtime.ProgressUpdate{
		JobID:              req.JobID,
		ProgressPercentage: percentage,
		Status:             string(domain.JobStatusProcessing),
		CurrentOperation:   fmt.Sprintf("Processing %s", req.FileName),
		ProcessedRecords:   result.ProcessedRecords,
		TotalRecords:       result.TotalRecords,
		CurrentFileName:    req.FileName,
		ProcessedFiles:     req.ProcessedFiles,
		TotalFiles:         req.TotalFiles,
		Errors:             result.Errors,
		Timestamp:          time.Now().UTC(),
	})
}

func structuralFailure(result domain.ProcessingResult, err error) (domain.ProcessingResult, error) {
	result.Errors = append(result.Errors, domain.RowError{
		FileName: result.FileName,
		Row:      0,
		Reason:   err.Error(),
	})
	return result, err
}
