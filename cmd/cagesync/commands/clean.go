package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cagesync/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the registry store and exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exports, _ := cmd.Flags().GetBool("exports")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}

			switch {
			case all:
				opts.Registry = true
				opts.Exports = true
			case exports:
				opts.Exports = true
			default:
				opts.Registry = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("exports", "e", false, "Remove the export directory instead of the registry")
	cmd.Flags().BoolP("all", "a", false, "Remove the registry and the export directory")

	return cmd
}
