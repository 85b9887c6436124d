package query

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/engine"
)

// Executor runs SQL against the cube view.
type Executor interface {
	Query(ctx context.Context, sqlQuery string) (*engine.QueryResult, error)
}

// Service translates structured queries, executes them against the cube view,
// and records query history. Read-only against the shared view — safe for
// concurrent use once the view is built.
type Service struct {
	translator *Translator
	exec       Executor
	history    domain.QueryHistoryRepository
	logger     *slog.Logger
}

// NewService creates a query Service.
func NewService(translator *Translator, exec Executor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{translator: translator, exec: exec, logger: logger}
}

// SetHistoryRepository configures query-history persistence.
// Optional — if not called, history is silently skipped.
func (s *Service) SetHistoryRepository(repo domain.QueryHistoryRepository) {
	s.history = repo
}

// Execute translates and runs a structured query, returning materialized rows,
// scenario totals, and the exact SQL executed. An empty row set is a valid,
// successful outcome.
func (s *Service) Execute(ctx context.Context, principal string, q domain.StructuredQuery) (*domain.QueryOutput, error) {
	plan, assumed, err := s.translator.Translate(q)
	if err != nil {
		return nil, err
	}
	sqlQuery := plan.SQL()

	start := time.Now()
	result, err := s.exec.Query(ctx, sqlQuery)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		s.logger.Error("query failed", "principal", principal, "intent", plan.Intent, "error", err)
		s.recordHistory(ctx, principal, plan.Intent, sqlQuery, domain.HistoryStatusError, err.Error(), nil, duration)
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, result.RowCount)
	for _, r := range result.Rows {
		row := make(map[string]interface{}, len(result.Columns))
		for i, col := range result.Columns {
			row[col] = r[i]
		}
		rows = append(rows, row)
	}

	rowCount := int64(result.RowCount)
	s.logger.Info("query executed",
		"principal", principal, "intent", plan.Intent, "rows", rowCount, "duration_ms", duration)
	s.recordHistory(ctx, principal, plan.Intent, sqlQuery, domain.HistoryStatusOK, "", &rowCount, duration)

	return &domain.QueryOutput{
		Rows:          rows,
		Totals:        computeTotals(result),
		QueryTrace:    sqlQuery,
		AssumedPeriod: assumed,
	}, nil
}

// computeTotals sums the scenario measure columns across all returned rows.
// Each total is present only when at least one column of its scenario was
// selected. VariancePct is derived from the Variance and BUD totals and is
// absent — never zero, never a division error — when the budget total is 0.
func computeTotals(result *engine.QueryResult) domain.Totals {
	var act, bud, variance sum
	for i, col := range result.Columns {
		scenario := scenarioOf(col)
		if scenario == "" {
			continue
		}
		for _, row := range result.Rows {
			v, ok := toFloat(row[i])
			if !ok {
				continue
			}
			switch scenario {
			case "ACT":
				act.add(v)
			case "BUD":
				bud.add(v)
			case "VAR":
				variance.add(v)
			}
		}
		// Mark presence even when the result has no rows.
		switch scenario {
		case "ACT":
			act.present = true
		case "BUD":
			bud.present = true
		case "VAR":
			variance.present = true
		}
	}

	totals := domain.Totals{
		ACT:      act.value(),
		BUD:      bud.value(),
		Variance: variance.value(),
	}
	if variance.present && bud.present && bud.total != 0 {
		pct := round2(variance.total / bud.total * 100)
		totals.VariancePct = &pct
	}
	return totals
}

// scenarioOf classifies a result column by its scenario prefix. VAR_PCT
// columns are ratios and are never summed.
func scenarioOf(col string) string {
	switch {
	case col == "VAR_PCT" || strings.HasPrefix(col, "VAR_PCT_"):
		return ""
	case col == "ACT" || strings.HasPrefix(col, "ACT_"):
		return "ACT"
	case col == "BUD" || strings.HasPrefix(col, "BUD_"):
		return "BUD"
	case col == "VAR" || strings.HasPrefix(col, "VAR_"):
		return "VAR"
	}
	return ""
}

type sum struct {
	total   float64
	present bool
}

func (s *sum) add(v float64) {
	s.total += v
	s.present = true
}

func (s *sum) value() *float64 {
	if !s.present {
		return nil
	}
	v := s.total
	return &v
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) recordHistory(ctx context.Context, principal, intent, sqlQuery, status, errMsg string, rowCount *int64, durationMs int64) {
	if s.history == nil {
		return
	}

	entry := &domain.QueryHistoryEntry{
		ID:         uuid.NewString(),
		Principal:  principal,
		Intent:     intent,
		SQL:        sqlQuery,
		Status:     status,
		RowCount:   rowCount,
		DurationMs: durationMs,
		CreatedAt:  time.Now().UTC(),
	}
	if errMsg != "" {
		entry.ErrorMessage = &errMsg
	}

	// Best-effort: history must never fail a query.
	if err := s.history.Insert(ctx, entry); err != nil {
		s.logger.Warn("record query history failed", "error", err)
	}
}
