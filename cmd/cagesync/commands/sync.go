package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cagesync/internal/app"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile bake bundles with the current source collections",
		Long: `Import the retopo and reference collections, create bundles for new names,
delete bundles whose names disappeared and flag bundles whose reference changed.
Existing cages and edits are never regenerated; use 'cagesync reset' for that.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			allowEmpty, _ := cmd.Flags().GetBool("allow-empty")
			verbose, _ := cmd.Flags().GetBool("verbose")

			_, err := c.app.Sync(cmd.Context(), app.SyncOptions{
				DryRun:     dryRun,
				AllowEmpty: allowEmpty,
				Verbose:    verbose,
			})
			return err
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Report what would change without saving")
	cmd.Flags().Bool("allow-empty", false, "Allow a sync when both collections are empty")
	cmd.Flags().BoolP("verbose", "v", false, "Print step timings")

	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync whenever a source collection changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowEmpty, _ := cmd.Flags().GetBool("allow-empty")
			verbose, _ := cmd.Flags().GetBool("verbose")

			return c.app.Watch(cmd.Context(), app.SyncOptions{
				AllowEmpty: allowEmpty,
				Verbose:    verbose,
			})
		},
	}

	cmd.Flags().Bool("allow-empty", false, "Allow a sync when both collections are empty")
	cmd.Flags().BoolP("verbose", "v", false, "Print step timings")

	return cmd
}
