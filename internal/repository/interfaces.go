package repository

import (
	"context"
	"errors"

	"accessgate/internal/domain"
)

// ErrUnavailable wraps infrastructure failures (connection loss, pool
// exhaustion) that should surface to the caller as service-unavailable
// rather than as a per-row error.
var ErrUnavailable = errors.New("repository: storage unavailable")

// RecordStore persists parsed rows into the target record tables.
type RecordStore interface {
	// Insert persists one validated row. Constraint violations (missing
	// foreign references, duplicates) come back as plain errors suitable
	// for row-level reporting; infrastructure failures wrap ErrUnavailable.
	Insert(ctx context.Context, table domain.TableType, row domain.ParsedRow) error
}

// HistoryRepository records and lists durable upload history rows.
type HistoryRepository interface {
	Record(ctx context.Context, rec *domain.UploadHistoryRecord) error
	List(ctx context.Context, userID string, page, pageSize int) ([]domain.UploadHistoryRecord, int, error)
}
