package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"accessgate/internal/domain"
)

// PostgresRecordStore implements RecordStore using PostgreSQL.
type PostgresRecordStore struct {
	pool *pgxpool.Pool
}

// NewPostgresRecordStore creates a new PostgresRecordStore.
func NewPostgresRecordStore(pool *pgxpool.Pool) *PostgresRecordStore {
	return &PostgresRecordStore{pool: pool}
}

// Insert persists one row into the table matching its record type.
func (s *PostgresRecordStore) Insert(ctx context.Context, table domain.TableType, row domain.ParsedRow) error {
	switch table {
	case domain.TableEmployees:
		return s.insertEmployee(ctx, row)
	case domain.TableGrants:
		return s.insertGrant(ctx, row)
	case domain.TableSystems:
		return s.insertSystem(ctx, row)
	default:
		return fmt.Errorf("unknown table type: %s", table)
	}
}

func (s *PostgresRecordStore) insertEmployee(ctx context.Context, row domain.ParsedRow) error {
	now := time.Now().UTC()
	status := row["status"]
	if status == "" {
		status = "active"
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO employees (employee_id, email, full_name, department, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (employee_id) DO UPDATE
		SET email = EXCLUDED.email, full_name = EXCLUDED.full_name,
			department = EXCLUDED.department, status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`, row["employee_id"], row["email"], row["full_name"], row["department"], status, now)
	if err != nil {
		return classifyInsertError(err)
	}
	return nil
}

func (s *PostgresRecordStore) insertGrant(ctx context.Context, row domain.ParsedRow) error {
	now := time.Now().UTC()
	var expiresAt *time.Time
	if raw := row["expires_at"]; raw != "" {
		ts, err := parseExpiry(raw)
		if err != nil {
			return fmt.Errorf("invalid expires_at value %q", raw)
		}
		expiresAt = &ts
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO access_grants (employee_id, system_key, role, granted_by, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (employee_id, system_key) DO UPDATE
		SET role = EXCLUDED.role, granted_by = EXCLUDED.granted_by,
			expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
	`, row["employee_id"], row["system_key"], row["role"], nullIfEmpty(row["granted_by"]), expiresAt, now)
	if err != nil {
		return classifyInsertError(err)
	}
	return nil
}

func (s *PostgresRecordStore) insertSystem(ctx context.Context, row domain.ParsedRow) error {
	now := time.Now().UTC()
	criticality := row["criticality"]
	if criticality == "" {
		criticality = "medium"
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO systems (system_key, name, owner, criticality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (system_key) DO UPDATE
		SET name = EXCLUDED.name, owner = EXCLUDED.owner,
			criticality = EXCLUDED.criticality, updated_at = EXCLUDED.updated_at
	`, row["system_key"], row["name"], nullIfEmpty(row["owner"]), criticality, now)
	if err != nil {
		return classifyInsertError(err)
	}
	return nil
}

// classifyInsertError keeps constraint violations row-level and treats
// everything else as an infrastructure failure.
func classifyInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return fmt.Errorf("referenced record does not exist (%s)", pgErr.ConstraintName)
		case "23505":
			return fmt.Errorf("duplicate record (%s)", pgErr.ConstraintName)
		}
		if strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23") {
			return fmt.Errorf("rejected by database: %s", pgErr.Message)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func parseExpiry(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", raw)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
