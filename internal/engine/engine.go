// Package engine owns the DuckDB analytical engine: dataset loading, the
// pre-aggregated cube view, and query execution against it.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"finsight/internal/domain"
)

// ViewName is the relation the translator queries.
const ViewName = "Finance"

// groupColumns are the dimensional attributes of the cube view, in the order
// they appear in the dataset.
var groupColumns = []string{"Year", "Quarter", "Period", "Brand", "Region", "Function"}

// Engine wraps an in-memory DuckDB connection holding the raw dataset and the
// cube aggregation view. The view is built once at startup; after that the
// engine is read-only and safe for concurrent queries.
type Engine struct {
	db      *sql.DB
	logger  *slog.Logger
	columns []string
}

// New creates an Engine on the given DuckDB connection.
func New(db *sql.DB, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{db: db, logger: logger}
}

// LoadDataset loads the finance CSV into the finance_raw table.
// Expected columns: Year, Quarter, Period, Brand, Region, Function, Account,
// Scenario, Value.
func (e *Engine) LoadDataset(ctx context.Context, csvPath string) error {
	stmt := fmt.Sprintf(
		"CREATE OR REPLACE TABLE finance_raw AS SELECT * FROM read_csv_auto(%s, header=True)",
		QuoteLiteral(csvPath),
	)
	if _, err := e.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("load dataset %q: %w", csvPath, err)
	}

	var rows int64
	if err := e.db.QueryRowContext(ctx, "SELECT count(*) FROM finance_raw").Scan(&rows); err != nil {
		return fmt.Errorf("count dataset rows: %w", err)
	}
	e.logger.Info("dataset loaded", "path", csvPath, "rows", rows)
	return nil
}

// BuildCubeView creates (or replaces) the Finance view, grouped by the
// dimensional attributes, with ACT/BUD/VAR/VAR_PCT columns per tracked
// account. VAR_PCT is NULL — not zero — whenever the budget sum is exactly
// zero. Combinations where both actual and budget totals are zero are
// suppressed. The view's columns are captured once and exposed via Columns.
func (e *Engine) BuildCubeView(ctx context.Context, accounts []string) error {
	if len(accounts) == 0 {
		return domain.ErrValidation("at least one tracked account is required")
	}

	var b strings.Builder
	b.WriteString("CREATE OR REPLACE VIEW " + ViewName + " AS SELECT\n    ")
	b.WriteString(strings.Join(groupColumns, ",\n    "))

	for _, account := range accounts {
		col := domain.SanitizeFieldName(account)
		lit := QuoteLiteral(account)
		act := fmt.Sprintf("SUM(CASE WHEN Scenario='ACT' AND Account=%s THEN Value END)", lit)
		bud := fmt.Sprintf("SUM(CASE WHEN Scenario='BUD' AND Account=%s THEN Value END)", lit)

		fmt.Fprintf(&b, ",\n    COALESCE(%s, 0) AS %s", act, QuoteIdent("ACT_"+col))
		fmt.Fprintf(&b, ",\n    COALESCE(%s, 0) AS %s", bud, QuoteIdent("BUD_"+col))
		fmt.Fprintf(&b, ",\n    COALESCE(%s - %s, 0) AS %s", act, bud, QuoteIdent("VAR_"+col))
		fmt.Fprintf(&b, ",\n    CASE WHEN %s <> 0 THEN ROUND((%s - %s) * 100.0 / %s, 2) END AS %s",
			bud, act, bud, bud, QuoteIdent("VAR_PCT_"+col))
	}

	b.WriteString("\nFROM finance_raw\nGROUP BY ")
	b.WriteString(strings.Join(groupColumns, ", "))
	b.WriteString("\nHAVING COALESCE(SUM(CASE WHEN Scenario='ACT' THEN Value END), 0) <> 0")
	b.WriteString("\n    OR COALESCE(SUM(CASE WHEN Scenario='BUD' THEN Value END), 0) <> 0")

	if _, err := e.db.ExecContext(ctx, b.String()); err != nil {
		return fmt.Errorf("build cube view: %w", err)
	}

	cols, err := e.describeView(ctx)
	if err != nil {
		return err
	}
	e.columns = cols

	e.logger.Info("cube view built", "view", ViewName, "accounts", len(accounts), "columns", len(cols))
	return nil
}

// Columns returns the cube view's column names in view order. The slice is
// built once by BuildCubeView; callers must not mutate it.
func (e *Engine) Columns() []string {
	return e.columns
}

// Query executes a SQL query against the engine and materializes all rows.
// Execution failures are wrapped in QueryExecutionError carrying the SQL.
func (e *Engine) Query(ctx context.Context, sqlQuery string) (*QueryResult, error) {
	rows, err := e.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, &domain.QueryExecutionError{SQL: sqlQuery, Err: err}
	}
	defer rows.Close() //nolint:errcheck

	result, err := scanRows(rows)
	if err != nil {
		return nil, &domain.QueryExecutionError{SQL: sqlQuery, Err: err}
	}
	return result, nil
}

// describeView reads the view's column names via DESCRIBE.
func (e *Engine) describeView(ctx context.Context) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, "DESCRIBE "+ViewName)
	if err != nil {
		return nil, fmt.Errorf("describe view: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	result, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("describe view: %w", err)
	}

	cols := make([]string, 0, result.RowCount)
	for _, row := range result.Rows {
		name, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("describe view: unexpected column name type %T", row[0])
		}
		cols = append(cols, name)
	}
	return cols, nil
}

// QuoteIdent wraps an identifier in double quotes, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral wraps a string in single quotes, doubling embedded quotes.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
