package ports

import (
	"context"

	"go.trai.ch/cagesync/internal/core/domain"
)

// MeshImporter reads a named mesh collection from backing storage.
//
//go:generate mockgen -source=mesh_importer.go -destination=mocks/mock_mesh_importer.go -package=mocks
type MeshImporter interface {
	// Import reads every object in the collection at path, scales positions by
	// scale and computes each object's topology fingerprint.
	Import(ctx context.Context, path string, scale float64) ([]domain.NamedMesh, error)
}
