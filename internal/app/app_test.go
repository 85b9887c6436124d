package app

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/config"
	internaldb "finsight/internal/db"
	"finsight/internal/domain"
)

const (
	appTestLayer = `{"name": "Finance.ACT_Net_Revenue", "group": "measures", "cube_name": "Finance", "hint": "Actual net revenue"}
{"name": "Finance.Brand", "group": "dimensions", "cube_name": "Finance", "hint": "Product brand"}
`
	appTestCSV = `Year,Quarter,Period,Brand,Region,Function,Account,Scenario,Value
2025,Q3,2025-Q3,BrandA,APAC,Sales,Net Revenue,ACT,100.0
2025,Q3,2025-Q3,BrandA,APAC,Sales,Net Revenue,BUD,80.0
`
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	layerPath := filepath.Join(dir, "layer.jsonl")
	require.NoError(t, os.WriteFile(layerPath, []byte(appTestLayer), 0o600))
	csvPath := filepath.Join(dir, "finance.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(appTestCSV), 0o600))

	return &config.Config{
		SemanticLayerPath: layerPath,
		DatasetPath:       csvPath,
		ReferenceYear:     2025,
	}
}

func TestNewWiresApplication(t *testing.T) {
	duckDB, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { duckDB.Close() }) //nolint:errcheck

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application, err := New(context.Background(), Deps{
		Cfg:    testConfig(t),
		DuckDB: duckDB,
		Logger: logger,
	})
	require.NoError(t, err)

	assert.Contains(t, application.Engine.Columns(), "ACT_Net_Revenue")
	assert.Len(t, application.Registry.ListCubes(), 1)
	assert.Nil(t, application.History, "no metastore configured")

	out, err := application.Query.Execute(context.Background(), "tester", domain.StructuredQuery{
		Measures: []string{"ACT_Net_Revenue"},
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.EqualValues(t, 100.0, out.Rows[0]["ACT_Net_Revenue"])
}

func TestNewWiresQueryHistory(t *testing.T) {
	duckDB, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { duckDB.Close() }) //nolint:errcheck

	metaPath := filepath.Join(t.TempDir(), "meta.sqlite")
	writeDB, readDB, err := internaldb.OpenSQLitePair(metaPath, 2)
	require.NoError(t, err)
	t.Cleanup(func() {
		writeDB.Close() //nolint:errcheck
		readDB.Close()  //nolint:errcheck
	})
	require.NoError(t, internaldb.RunMigrations(writeDB))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application, err := New(context.Background(), Deps{
		Cfg:     testConfig(t),
		DuckDB:  duckDB,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  logger,
	})
	require.NoError(t, err)
	require.NotNil(t, application.History)

	_, err = application.Query.Execute(context.Background(), "tester", domain.StructuredQuery{
		Measures: []string{"ACT_Net_Revenue"},
	})
	require.NoError(t, err)

	entries, err := application.History.List(context.Background(), domain.QueryHistoryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tester", entries[0].Principal)
	assert.Equal(t, domain.HistoryStatusOK, entries[0].Status)
}

func TestNewFailsOnMissingSemanticLayer(t *testing.T) {
	duckDB, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { duckDB.Close() }) //nolint:errcheck

	cfg := testConfig(t)
	cfg.SemanticLayerPath = filepath.Join(t.TempDir(), "missing.jsonl")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = New(context.Background(), Deps{Cfg: cfg, DuckDB: duckDB, Logger: logger})

	var loadErr *domain.RegistryLoadError
	require.ErrorAs(t, err, &loadErr)
}
