package domain

import (
	"context"
	"time"
)

// Query history statuses.
const (
	HistoryStatusOK    = "OK"
	HistoryStatusError = "ERROR"
)

// QueryHistoryEntry records one translated query execution.
type QueryHistoryEntry struct {
	ID           string
	Principal    string
	Intent       string
	SQL          string
	Status       string
	ErrorMessage *string
	RowCount     *int64
	DurationMs   int64
	CreatedAt    time.Time
}

// QueryHistoryFilter narrows a history listing.
type QueryHistoryFilter struct {
	Principal *string
	Status    *string
	Limit     int
}

// QueryHistoryRepository persists and lists query history entries.
type QueryHistoryRepository interface {
	Insert(ctx context.Context, e *QueryHistoryEntry) error
	List(ctx context.Context, filter QueryHistoryFilter) ([]QueryHistoryEntry, error)
}
