package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
)

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Registry bool
	Exports  bool
}

// Clean removes the workspace directory holding the registry and, optionally,
// the export directory.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Registry {
		remove(domain.DefaultWorkspacePath(settings.Root), "registry store")
	}
	if options.Exports {
		remove(settings.Export.Dir, "exports")
	}

	return errs
}
