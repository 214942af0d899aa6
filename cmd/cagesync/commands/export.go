package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cagesync/internal/app"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the retopo, reference and cage collections for baking",
		Long: `Write the retopo, reference and cage collections for baking.
Without --retopo, --reference or --cage all three are written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			retopo, _ := cmd.Flags().GetBool("retopo")
			reference, _ := cmd.Flags().GetBool("reference")
			cage, _ := cmd.Flags().GetBool("cage")
			dir, _ := cmd.Flags().GetString("dir")

			_, err := c.app.Export(cmd.Context(), app.ExportOptions{
				Retopo:    retopo,
				Reference: reference,
				Cage:      cage,
				Dir:       dir,
			})
			return err
		},
	}

	cmd.Flags().Bool("retopo", false, "Write the retopo collection")
	cmd.Flags().Bool("reference", false, "Write the reference collection")
	cmd.Flags().Bool("cage", false, "Write the cage collection")
	cmd.Flags().String("dir", "", "Override the export directory")

	return cmd
}
