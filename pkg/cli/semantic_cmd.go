package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newCubesCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "cubes",
		Short: "List cubes or show one cube's measures and dimensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if name != "" {
				detail := application.Registry.CubeDetails(name)
				if detail == nil {
					return printJSON(os.Stdout, map[string]interface{}{
						"cube_name": name,
						"found":     false,
					})
				}
				return printJSON(os.Stdout, detail)
			}
			return printJSON(os.Stdout, application.Registry.ListCubes())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Cube to describe (omit to list all)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var cube, group string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search measures and dimensions in the semantic layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			items := application.Registry.Search(args[0], cube, group)
			return printJSON(os.Stdout, map[string]interface{}{
				"items": items,
				"count": len(items),
			})
		},
	}

	cmd.Flags().StringVar(&cube, "cube", "", "Restrict to one cube")
	cmd.Flags().StringVar(&group, "group", "", "Restrict to a group (measures or dimensions)")
	return cmd
}
