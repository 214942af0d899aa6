// Package commands implements the CLI commands for cagesync.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cagesync/internal/app"
	"go.trai.ch/cagesync/internal/build"
	"go.trai.ch/cagesync/internal/core/domain"
)

// CLI represents the command line interface for cagesync.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Sync(ctx context.Context, opts app.SyncOptions) (*domain.SyncReport, error)
	Reset(ctx context.Context, opts app.ResetOptions) (*domain.SyncReport, error)
	Rebuild(ctx context.Context, opts app.ResetOptions) (*domain.SyncReport, error)
	Status(ctx context.Context) error
	Edit(ctx context.Context, name string, op domain.EditOp) error
	Accept(ctx context.Context, opts app.AcceptOptions) error
	Set(ctx context.Context, name string, opts app.SetOptions) error
	Export(ctx context.Context, opts app.ExportOptions) ([]string, error)
	Watch(ctx context.Context, opts app.SyncOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	SetColor(flag string)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cagesync",
		Short:         "Keep bake cages in sync with retopo and reference meshes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("color", "auto", "Style output: auto, always or never")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		color, _ := cmd.Flags().GetString("color")
		a.SetColor(color)
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(
		c.newSyncCmd(),
		c.newResetCmd(),
		c.newRebuildCmd(),
		c.newStatusCmd(),
		c.newEditCmd(),
		c.newAcceptCmd(),
		c.newSetCmd(),
		c.newExportCmd(),
		c.newWatchCmd(),
		c.newCleanCmd(),
		c.newVersionCmd(),
	)

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
