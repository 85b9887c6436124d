// Package app wires the application: engine, semantic registry, query service,
// and the metastore repositories main() cannot create itself.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"finsight/internal/config"
	"finsight/internal/db/repository"
	"finsight/internal/engine"
	"finsight/internal/service/query"
	"finsight/internal/service/semantic"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	DuckDB  *sql.DB
	WriteDB *sql.DB // SQLite metastore write pool; nil disables query history
	ReadDB  *sql.DB // SQLite metastore read pool; nil disables query history
	Logger  *slog.Logger
}

// App holds the fully-wired application.
type App struct {
	Engine   *engine.Engine
	Registry *semantic.Registry
	Query    *query.Service
	History  *repository.QueryHistoryRepo // nil when no metastore is configured
}

// New loads the semantic layer and the dataset, builds the cube view, and
// wires the query service on top.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	eng := engine.New(deps.DuckDB, logger.With("component", "engine"))

	// Registry load and dataset load are independent; run them concurrently.
	var registry *semantic.Registry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		registry, err = semantic.Load(cfg.SemanticLayerPath, logger.With("component", "semantic"))
		return err
	})
	g.Go(func() error {
		return eng.LoadDataset(gctx, cfg.DatasetPath)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	accounts, err := engine.LoadAccounts(cfg.AccountsPath)
	if err != nil {
		return nil, fmt.Errorf("load tracked accounts: %w", err)
	}
	if err := eng.BuildCubeView(ctx, accounts); err != nil {
		return nil, err
	}

	translator := query.NewTranslator(eng.Columns(), cfg.ReferenceYear)
	querySvc := query.NewService(translator, eng, logger.With("component", "query"))

	app := &App{Engine: eng, Registry: registry, Query: querySvc}

	// Inserts go through the write pool, the API listing through the read pool.
	if deps.WriteDB != nil && deps.ReadDB != nil {
		querySvc.SetHistoryRepository(repository.NewQueryHistoryRepo(deps.WriteDB))
		app.History = repository.NewQueryHistoryRepo(deps.ReadDB)
	}

	return app, nil
}
