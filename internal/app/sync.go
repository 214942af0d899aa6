package app

import (
	"context"
	"errors"

	"go.trai.ch/cagesync/internal/adapters/telemetry"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
)

// SyncOptions configuration for the Sync method.
type SyncOptions struct {
	DryRun     bool
	AllowEmpty bool
	Verbose    bool
}

// Sync imports both collections, reconciles the registry with them and, unless
// DryRun is set, saves the result. The report is rendered in every case where
// reconciliation ran.
//
// Per-bundle generation failures do not abort the pass; they are reported and
// the returned error matches domain.ErrSyncFailed.
func (a *App) Sync(ctx context.Context, opts SyncOptions) (*domain.SyncReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.sync(ctx, opts)
}

func (a *App) sync(ctx context.Context, opts SyncOptions) (*domain.SyncReport, error) {
	settings, err := a.loadSettings()
	if err != nil {
		return nil, err
	}

	renderer := a.newRenderer(opts.Verbose)
	shutdown := telemetry.Install(telemetry.NewBridge(renderer))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	started := a.now()
	passID, err := domain.NewPassID(started)
	if err != nil {
		return nil, err
	}

	ctx, span := a.tracer.Start(ctx, "Sync", ports.WithAttribute("cagesync.pass_id", passID))
	defer span.End()

	snap, err := a.importSnapshot(ctx, settings)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if snap.IsEmpty() && !opts.AllowEmpty {
		span.RecordError(domain.ErrEmptySnapshot)
		return nil, domain.ErrEmptySnapshot
	}

	var report *domain.SyncReport
	err = a.withRegistry(ctx, settings, func(reg *domain.Registry) (*domain.Registry, error) {
		next, r, err := a.synchronizer.SynchronizeSnapshot(ctx, reg, snap, settings.Defaults)
		if err != nil {
			return nil, err
		}
		report = r
		if opts.DryRun {
			return nil, nil
		}
		return next, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	report.PassID = passID
	report.StartedAt = started
	report.Duration = a.now().Sub(started)
	report.DryRun = opts.DryRun

	renderer.RenderReport(report)

	if len(report.Failures()) > 0 {
		return report, errors.Join(domain.ErrSyncFailed, report.Err())
	}
	return report, nil
}
