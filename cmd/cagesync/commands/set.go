package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cagesync/internal/app"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r3"
)

func (c *CLI) newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Change a bundle's parameters",
		Long: `Change a bundle's parameters. A new peak distance does not touch the cage;
the bundle turns stale until it is reset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := setOptions(cmd)
			if err != nil {
				return err
			}
			return c.app.Set(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Float64("peak-distance", 0, "Cage offset along reference normals")
	cmd.Flags().Uint("iterations", 0, "Iteration count")
	cmd.Flags().Float64Slice("translate", nil, "Export offset as x,y,z")
	cmd.Flags().Bool("show-retopo", false, "Show the retopo mesh")
	cmd.Flags().Bool("show-reference", false, "Show the reference mesh")
	cmd.Flags().Bool("show-cage", false, "Show the cage")

	return cmd
}

func setOptions(cmd *cobra.Command) (app.SetOptions, error) {
	var opts app.SetOptions
	flags := cmd.Flags()

	if flags.Changed("peak-distance") {
		v, _ := flags.GetFloat64("peak-distance")
		opts.PeakDistance = &v
	}
	if flags.Changed("iterations") {
		v, _ := flags.GetUint("iterations")
		opts.Iterations = &v
	}
	if flags.Changed("translate") {
		v, _ := flags.GetFloat64Slice("translate")
		if len(v) != 3 {
			return opts, zerr.With(domain.ErrInvalidVector, "translate", v)
		}
		opts.Translate = &r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}

	for flag, target := range map[string]**bool{
		"show-retopo":    &opts.ShowRetopo,
		"show-reference": &opts.ShowReference,
		"show-cage":      &opts.ShowCage,
	} {
		if flags.Changed(flag) {
			v, _ := flags.GetBool(flag)
			*target = &v
		}
	}

	return opts, nil
}
