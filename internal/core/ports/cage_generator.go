package ports

import "go.trai.ch/cagesync/internal/core/domain"

// CageGenerator produces default cages from reference meshes.
//
//go:generate mockgen -source=cage_generator.go -destination=mocks/mock_cage_generator.go -package=mocks
type CageGenerator interface {
	// Generate displaces every reference point along its normal by peakDistance.
	// It never mutates reference.
	Generate(reference domain.NamedMesh, peakDistance float64) (domain.Geometry, error)
}
