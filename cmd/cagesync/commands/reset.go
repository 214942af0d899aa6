package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cagesync/internal/app"
)

func (c *CLI) newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [name...]",
		Short: "Regenerate cages from the current reference and discard edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			verbose, _ := cmd.Flags().GetBool("verbose")

			if len(args) == 0 && !all {
				return cmd.Help()
			}

			_, err := c.app.Reset(cmd.Context(), app.ResetOptions{
				Names:   args,
				All:     all,
				Verbose: verbose,
			})
			return err
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Reset every bundle")
	cmd.Flags().BoolP("verbose", "v", false, "Print step timings")

	return cmd
}

func (c *CLI) newRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild [name...]",
		Short: "Regenerate cages with their own peak distance, keeping edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			verbose, _ := cmd.Flags().GetBool("verbose")

			if len(args) == 0 && !all {
				return cmd.Help()
			}

			_, err := c.app.Rebuild(cmd.Context(), app.ResetOptions{
				Names:   args,
				All:     all,
				Verbose: verbose,
			})
			return err
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Rebuild every bundle")
	cmd.Flags().BoolP("verbose", "v", false, "Print step timings")

	return cmd
}

func (c *CLI) newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept [name...]",
		Short: "Mark inspected bundles as reviewed",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			if len(args) == 0 && !all {
				return cmd.Help()
			}

			return c.app.Accept(cmd.Context(), app.AcceptOptions{Names: args, All: all})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Accept every bundle awaiting inspection")

	return cmd
}
