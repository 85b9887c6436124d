package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"finsight/internal/domain"
)

func newQueryCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "query [structured-query-json]",
		Short: "Translate and run a structured query against the cube view",
		Long: `Runs a structured query (intent, measures, dimensions, filters) against the
cube view and prints rows, totals, and the generated SQL. The query is read
from the argument, from --file, or from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readQueryInput(args, file)
			if err != nil {
				return err
			}

			var q domain.StructuredQuery
			if err := json.Unmarshal(raw, &q); err != nil {
				return fmt.Errorf("parse structured query: %w", err)
			}

			application, cleanup, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := application.Query.Execute(cmd.Context(), "cli", q)
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the structured query from a file")
	return cmd
}

func readQueryInput(args []string, file string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	if file != "" {
		return os.ReadFile(file) //nolint:gosec // path comes from the user
	}
	return io.ReadAll(os.Stdin)
}
