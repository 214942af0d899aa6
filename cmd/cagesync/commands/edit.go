package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cagesync/internal/core/domain"
)

func (c *CLI) newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Append an edit operation to a bundle's cage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			data, _ := cmd.Flags().GetString("data")

			return c.app.Edit(cmd.Context(), args[0], domain.EditOp{Kind: kind, Data: data})
		},
	}

	cmd.Flags().StringP("kind", "k", "", "Operation kind")
	cmd.Flags().StringP("data", "d", "", "Opaque operation payload")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
