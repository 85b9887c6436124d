// Package repository implements SQLite-backed persistence for the metastore.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finsight/internal/domain"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// QueryHistoryRepo persists query history entries in the SQLite metastore.
type QueryHistoryRepo struct {
	db *sql.DB
}

// NewQueryHistoryRepo creates a QueryHistoryRepo on the given pool.
func NewQueryHistoryRepo(db *sql.DB) *QueryHistoryRepo {
	return &QueryHistoryRepo{db: db}
}

// Insert stores one history entry.
func (r *QueryHistoryRepo) Insert(ctx context.Context, e *domain.QueryHistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO query_history (id, principal, intent, sql_text, status, error_message, row_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Principal, e.Intent, e.SQL, e.Status,
		e.ErrorMessage, e.RowCount, e.DurationMs,
		e.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert query history: %w", err)
	}
	return nil
}

// List returns history entries, newest first, honoring the optional
// principal/status filters and limit (default 100).
func (r *QueryHistoryRepo) List(ctx context.Context, filter domain.QueryHistoryFilter) ([]domain.QueryHistoryEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	q := `
		SELECT id, principal, intent, sql_text, status, error_message, row_count, duration_ms, created_at
		FROM query_history
		WHERE (? IS NULL OR principal = ?)
		  AND (? IS NULL OR status = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	var principal, status interface{}
	if filter.Principal != nil {
		principal = *filter.Principal
	}
	if filter.Status != nil {
		status = *filter.Status
	}

	rows, err := r.db.QueryContext(ctx, q, principal, principal, status, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list query history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []domain.QueryHistoryEntry
	for rows.Next() {
		var e domain.QueryHistoryEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Principal, &e.Intent, &e.SQL, &e.Status,
			&e.ErrorMessage, &e.RowCount, &e.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan query history: %w", err)
		}
		if t, err := time.Parse(sqliteTimeLayout, createdAt); err == nil {
			e.CreatedAt = t.UTC()
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list query history: %w", err)
	}
	return entries, nil
}
