package app

import (
	"context"
	"errors"

	"go.trai.ch/cagesync/internal/adapters/watcher"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Watch runs a sync, then another one each time either source file changes,
// until ctx is cancelled. Events are debounced by the configured window.
// Failed passes are logged and watching continues.
func (a *App) Watch(ctx context.Context, opts SyncOptions) error {
	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() {
		_ = w.Stop()
	}()

	if err := w.Start(ctx, []string{settings.RetopoPath, settings.ReferencePath}); err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}

	a.watchPass(ctx, opts)

	debouncer := watcher.NewDebouncer(settings.WatchDebounce, func([]string) {
		a.watchPass(ctx, opts)
	})
	defer debouncer.Stop()

	a.logger.Info("watching " + settings.RetopoPath + " and " + settings.ReferencePath)
	for event := range w.Events() {
		if ctx.Err() != nil {
			break
		}
		debouncer.Add(event.Path)
	}

	// The watcher closed on its own; deliver what is pending.
	if ctx.Err() == nil {
		debouncer.Flush()
	}
	return nil
}

func (a *App) watchPass(ctx context.Context, opts SyncOptions) {
	if ctx.Err() != nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.sync(ctx, opts); err != nil && !errors.Is(err, domain.ErrSyncFailed) {
		a.logger.Error(err)
	}
}
