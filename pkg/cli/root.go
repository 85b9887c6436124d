// Package cli implements the finsight command-line interface. All commands run
// the analytics core in-process against the configured dataset; no server is
// required.
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"finsight/internal/app"
	"finsight/internal/config"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "finsight",
		Short:         "Finance analytics CLI",
		Long:          "Command-line interface for the finance analytics core: semantic catalog lookups and structured queries against the cube view.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Accept snake_case flag spellings as well.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.AddCommand(newCubesCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newQueryCmd())

	return rootCmd
}

// bootstrap loads config and wires the in-process application. The CLI never
// touches the SQLite metastore; query history is a server concern.
func bootstrap(ctx context.Context) (*app.App, func(), error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	duckDB, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, nil, fmt.Errorf("open duckdb: %w", err)
	}

	application, err := app.New(ctx, app.Deps{Cfg: cfg, DuckDB: duckDB, Logger: logger})
	if err != nil {
		duckDB.Close() //nolint:errcheck
		return nil, nil, err
	}

	cleanup := func() { duckDB.Close() } //nolint:errcheck
	return application, cleanup, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
