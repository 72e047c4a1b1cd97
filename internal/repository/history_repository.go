package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"accessgate/internal/domain"
)

// PostgresHistoryRepository implements HistoryRepository using PostgreSQL.
type PostgresHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHistoryRepository creates a new PostgresHistoryRepository.
func NewPostgresHistoryRepository(pool *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{pool: pool}
}

// Record inserts one upload history row. History rows are append-only.
func (r *PostgresHistoryRepository) Record(ctx context.Context, rec *domain.UploadHistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO upload_history (id, user_id, table_type, file_name, total_records,
			processed_records, failed_records, status, duration_ms, error_detail, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rec.ID, rec.UserID, rec.TableType, rec.FileName, rec.TotalRecords,
		rec.ProcessedRecords, rec.FailedRecords, rec.Status, rec.Duration.Milliseconds(),
		rec.ErrorDetail, rec.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert upload history: %w", err)
	}
	return nil
}

// List returns one page of the caller's upload history, newest first, plus
// the total row count for pagination.
func (r *PostgresHistoryRepository) List(ctx context.Context, userID string, page, pageSize int) ([]domain.UploadHistoryRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM upload_history WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count upload history: %w: %v", ErrUnavailable, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, table_type, file_name, total_records, processed_records,
			failed_records, status, duration_ms, error_detail, uploaded_at
		FROM upload_history
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
		LIMIT $2 OFFSET $3
	`, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list upload history: %w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var records []domain.UploadHistoryRecord
	for rows.Next() {
		var rec domain.UploadHistoryRecord
		var durationMS int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.TableType, &rec.FileName,
			&rec.TotalRecords, &rec.ProcessedRecords, &rec.FailedRecords,
			&rec.Status, &durationMS, &rec.ErrorDetail, &rec.UploadedAt); err != nil {
			return nil, 0, fmt.Errorf("scan upload history: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate upload history: %w", err)
	}
	return records, total, nil
}
