package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
)

// ExportOptions configuration for the Export method. When none of Retopo,
// Reference and Cage is set, all three collections are written.
type ExportOptions struct {
	Retopo    bool
	Reference bool
	Cage      bool
	Dir       string
}

// Export writes the selected collections for every bundle in registry order.
func (a *App) Export(ctx context.Context, opts ExportOptions) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.loadSettings()
	if err != nil {
		return nil, err
	}

	corr, err := a.currentCorrespondence(ctx, settings)
	if err != nil {
		return nil, err
	}

	var items []domain.ExportItem
	err = a.withRegistry(ctx, settings, func(reg *domain.Registry) (*domain.Registry, error) {
		for b := range reg.All() {
			pair, ok := corr.Get(b.Name)
			if !ok {
				a.logger.Warn(fmt.Sprintf("%s is not in the source collections, run 'cagesync sync' first", b.Name))
				continue
			}
			items = append(items, domain.ExportItem{Bundle: b, Retopo: pair.Retopo, Reference: pair.Reference})
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	exportOpts, err := a.exportOptions(settings, opts)
	if err != nil {
		return nil, err
	}

	ctx, span := a.tracer.Start(ctx, "Exporting Collections")
	defer span.End()

	written, err := a.exporter.Export(ctx, items, exportOpts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for _, path := range written {
		a.logger.Info("wrote " + path)
	}
	return written, nil
}

func (a *App) exportOptions(settings *domain.Settings, opts ExportOptions) (domain.ExportOptions, error) {
	out := domain.ExportOptions{
		Dir:                   settings.Export.Dir,
		Scale:                 settings.Export.Scale,
		UseNameCorrespondence: settings.Export.UseNameCorrespondence,
		RetopoSuffix:          settings.Export.RetopoSuffix,
		ReferenceSuffix:       settings.Export.ReferenceSuffix,
		Retopo:                opts.Retopo,
		Reference:             opts.Reference,
		Cage:                  opts.Cage,
	}
	if !out.Retopo && !out.Reference && !out.Cage {
		out.Retopo, out.Reference, out.Cage = true, true, true
	}

	if opts.Dir != "" {
		dir, err := filepath.Abs(opts.Dir)
		if err != nil {
			return out, zerr.With(zerr.Wrap(err, "failed to resolve export directory"), "dir", opts.Dir)
		}
		out.Dir = dir
	}
	return out, nil
}
