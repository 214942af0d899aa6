// Package meshfile reads and writes YAML mesh collection files.
package meshfile

import (
	"context"
	"os"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MeshImporter = (*Importer)(nil)

// Importer captures named meshes from a collection file.
type Importer struct {
	fingerprinter ports.Fingerprinter
}

// NewImporter creates a new Importer.
func NewImporter(fingerprinter ports.Fingerprinter) *Importer {
	return &Importer{fingerprinter: fingerprinter}
}

// Import reads the collection at path and fingerprints every object.
// Positions are multiplied by scale before fingerprinting.
func (i *Importer) Import(ctx context.Context, path string, scale float64) ([]domain.NamedMesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 -- path comes from the workspace configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error()), "path", path)
	}

	names, geoms, err := Decode(data, scale)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	meshes := make([]domain.NamedMesh, len(names))
	for idx, name := range names {
		meshes[idx] = domain.NamedMesh{
			Name:        name,
			Geometry:    geoms[idx],
			Fingerprint: i.fingerprinter.Fingerprint(geoms[idx]),
		}
	}
	return meshes, nil
}
