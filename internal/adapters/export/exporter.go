// Package export writes bake bundles out as mesh collection files.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/cagesync/internal/adapters/meshfile"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ ports.Exporter = (*Exporter)(nil)

// Exporter writes retopo, reference and cage collections.
type Exporter struct {
	logger ports.Logger
}

// NewExporter creates a new Exporter.
func NewExporter(logger ports.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes the selected collections into opts.Dir and returns the written paths.
//
// Cages are offset by each bundle's translate before scaling. Retopo and
// reference objects take the configured suffixes when name correspondence is on.
func (e *Exporter) Export(ctx context.Context, items []domain.ExportItem, opts domain.ExportOptions) ([]string, error) {
	if opts.Scale <= 0 {
		return nil, zerr.With(domain.ErrInvalidScale, "scale", opts.Scale)
	}

	var retopo, reference, cages []meshfile.ObjectDTO
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if item.Bundle.Status != domain.StatusClean {
			e.logger.Warn(fmt.Sprintf("exporting %q while it is %s", item.Bundle.Name, item.Bundle.Status))
		}
		retopo = append(retopo, meshfile.NewObject(opts.RetopoName(item.Bundle.Name), item.Retopo.Geometry, r3.Vec{}, opts.Scale))
		reference = append(reference, meshfile.NewObject(opts.ReferenceName(item.Bundle.Name), item.Reference.Geometry, r3.Vec{}, opts.Scale))
		cages = append(cages, meshfile.NewObject(item.Bundle.Name, item.Bundle.Cage, item.Bundle.Params.Translate, opts.Scale))
	}

	if err := os.MkdirAll(opts.Dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", opts.Dir)
	}

	var written []string
	for _, out := range []struct {
		enabled bool
		file    string
		objects []meshfile.ObjectDTO
	}{
		{opts.Retopo, domain.RetopoExportFile, retopo},
		{opts.Reference, domain.ReferenceExportFile, reference},
		{opts.Cage, domain.CageExportFile, cages},
	} {
		if !out.enabled {
			continue
		}
		path := filepath.Join(opts.Dir, out.file)
		if err := writeCollection(path, out.objects); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeCollection(path string, objects []meshfile.ObjectDTO) error {
	data, err := meshfile.Encode(objects)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	//nolint:gosec // Path is constructed from the configured export directory
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", path)
	}
	return nil
}
