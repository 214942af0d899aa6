package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/cagesync/internal/adapters/telemetry"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/engine/synchronizer"
	"gonum.org/v1/gonum/spatial/r3"
)

// ResetOptions configuration for the Reset and Rebuild methods.
type ResetOptions struct {
	Names   []string
	All     bool
	Verbose bool
}

// Reset regenerates the cages of the selected bundles from the current
// reference meshes with the default peak distance and discards their edits.
// Unknown names abort before any bundle is touched; a generation failure only
// affects its own bundle.
func (a *App) Reset(ctx context.Context, opts ResetOptions) (*domain.SyncReport, error) {
	return a.regenerate(ctx, opts, domain.ActionReset, func(
		ctx context.Context, settings *domain.Settings, reg *domain.Registry, corr *domain.Correspondence, name string,
	) (*domain.Registry, error) {
		return a.synchronizer.Reset(ctx, reg, corr, name, settings.Defaults)
	})
}

// Rebuild regenerates the cages of the selected bundles with their own peak
// distance, keeping edits and translate offsets. It is how a stale bundle
// picks up a changed peak distance.
func (a *App) Rebuild(ctx context.Context, opts ResetOptions) (*domain.SyncReport, error) {
	return a.regenerate(ctx, opts, domain.ActionRebuild, func(
		ctx context.Context, _ *domain.Settings, reg *domain.Registry, corr *domain.Correspondence, name string,
	) (*domain.Registry, error) {
		return a.synchronizer.Rebuild(ctx, reg, corr, name)
	})
}

type regenerateFunc func(
	ctx context.Context,
	settings *domain.Settings,
	reg *domain.Registry,
	corr *domain.Correspondence,
	name string,
) (*domain.Registry, error)

func (a *App) regenerate(
	ctx context.Context,
	opts ResetOptions,
	action domain.Action,
	fn regenerateFunc,
) (*domain.SyncReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

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

	corr, err := a.currentCorrespondence(ctx, settings)
	if err != nil {
		return nil, err
	}

	report := &domain.SyncReport{PassID: passID, StartedAt: started}
	err = a.withRegistry(ctx, settings, func(reg *domain.Registry) (*domain.Registry, error) {
		names, err := resolveNames(reg, opts.Names, opts.All)
		if err != nil {
			return nil, err
		}

		next := reg
		for _, name := range names {
			updated, err := fn(ctx, settings, next, corr, name)
			if err != nil {
				report.Add(domain.ReportEntry{Name: name, Action: action, Err: err})
				continue
			}
			next = updated
			bundle, _ := next.Get(name)
			report.Add(domain.ReportEntry{Name: name, Action: action, Status: bundle.Status})
		}

		if report.Count(action) == 0 {
			return nil, nil
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	report.Duration = a.now().Sub(started)
	renderer.RenderReport(report)

	if len(report.Failures()) > 0 {
		return report, errors.Join(domain.ErrSyncFailed, report.Err())
	}
	return report, nil
}

// Edit appends op to the named bundle's edit subgraph.
func (a *App) Edit(ctx context.Context, name string, op domain.EditOp) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	err = a.withRegistry(ctx, settings, func(reg *domain.Registry) (*domain.Registry, error) {
		return synchronizer.AppendEdit(reg, name, op)
	})
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("appended %q to %s", op.Kind, name))
	return nil
}

// AcceptOptions configuration for the Accept method.
type AcceptOptions struct {
	Names []string
	All   bool
}

// Accept marks inspected bundles as reviewed. With All, only bundles awaiting
// inspection are considered. Any failure leaves the registry untouched.
func (a *App) Accept(ctx context.Context, opts AcceptOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	var messages []string
	err = a.withRegistry(ctx, settings, func(reg *domain.Registry) (*domain.Registry, error) {
		names, err := a.acceptNames(reg, opts)
		if err != nil {
			return nil, err
		}

		next := reg
		for _, name := range names {
			updated, status, err := synchronizer.Accept(next, name)
			if err != nil {
				return nil, err
			}
			next = updated
			messages = append(messages, fmt.Sprintf("%s: %s", name, status))
		}
		if len(names) == 0 {
			return nil, nil
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		a.logger.Info("no bundles need inspection")
	}
	for _, msg := range messages {
		a.logger.Info(msg)
	}
	return nil
}

func (a *App) acceptNames(reg *domain.Registry, opts AcceptOptions) ([]string, error) {
	if !opts.All {
		return resolveNames(reg, opts.Names, false)
	}
	var names []string
	for b := range reg.All() {
		if b.Status == domain.StatusNeedsInspection {
			names = append(names, b.Name)
		}
	}
	return names, nil
}

// SetOptions carries the parameter changes for the Set method. Nil fields are
// left unchanged.
type SetOptions struct {
	PeakDistance  *float64
	Iterations    *uint
	Translate     *r3.Vec
	ShowRetopo    *bool
	ShowReference *bool
	ShowCage      *bool
}

func (o SetOptions) apply(p *domain.Parameters) {
	if o.PeakDistance != nil {
		p.PeakDistance = *o.PeakDistance
	}
	if o.Iterations != nil {
		p.Iterations = *o.Iterations
	}
	if o.Translate != nil {
		p.Translate = *o.Translate
	}
	if o.ShowRetopo != nil {
		p.Visibility.Retopo = *o.ShowRetopo
	}
	if o.ShowReference != nil {
		p.Visibility.Reference = *o.ShowReference
	}
	if o.ShowCage != nil {
		p.Visibility.Cage = *o.ShowCage
	}
}

// Set updates the named bundle's parameters.
func (a *App) Set(ctx context.Context, name string, opts SetOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	var bundle domain.BakeBundle
	err = a.withRegistry(ctx, settings, func(reg *domain.Registry) (*domain.Registry, error) {
		next, updated, err := synchronizer.Configure(reg, name, opts.apply)
		if err != nil {
			return nil, err
		}
		bundle = updated
		return next, nil
	})
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("%s: %s", name, bundle.Status))
	if bundle.Status == domain.StatusStale {
		a.logger.Warn(fmt.Sprintf(
			"cage of %s was built with peak distance %g; run 'cagesync rebuild %s' to apply %g",
			name, bundle.CagePeakDistance, name, bundle.Params.PeakDistance,
		))
	}
	return nil
}

// Status renders the per-bundle status table.
func (a *App) Status(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	return a.withRegistry(ctx, settings, func(reg *domain.Registry) (*domain.Registry, error) {
		a.newRenderer(false).RenderStatus(reg)
		return nil, nil
	})
}
