// Package cage produces cage geometry from reference meshes.
package cage

import (
	"math"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r3"
)

// Generator displaces reference points along their normals.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a cage whose points sit peakDistance away from the reference
// points along their unit normals. Points with a zero normal stay in place.
// The reference mesh is never modified.
func (g *Generator) Generate(reference domain.NamedMesh, peakDistance float64) (domain.Geometry, error) {
	if math.IsNaN(peakDistance) || math.IsInf(peakDistance, 0) {
		return domain.Geometry{}, zerr.With(domain.ErrInvalidPeakDistance, "peak_distance", peakDistance)
	}
	if reference.Geometry.IsEmpty() {
		return domain.Geometry{}, zerr.With(domain.ErrEmptyReference, "name", reference.Name)
	}
	if !reference.Geometry.Finite() {
		return domain.Geometry{}, zerr.With(domain.ErrDegenerateReference, "name", reference.Name)
	}

	points := make([]domain.Point, len(reference.Geometry.Points))
	for i, p := range reference.Geometry.Points {
		points[i] = domain.Point{
			Position: displace(p, peakDistance),
			Normal:   p.Normal,
		}
	}
	return domain.Geometry{Points: points}, nil
}

func displace(p domain.Point, distance float64) r3.Vec {
	if distance == 0 {
		return p.Position
	}
	length := r3.Norm(p.Normal)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return p.Position
	}
	return r3.Add(p.Position, r3.Scale(distance/length, p.Normal))
}
