package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a single mesh vertex with its normal.
type Point struct {
	Position r3.Vec `json:"position"`
	Normal   r3.Vec `json:"normal"`
}

// Geometry is an ordered point list. Point order is significant: it feeds the
// topology fingerprint and is preserved by every transformation.
type Geometry struct {
	Points []Point `json:"points"`
}

// NewGeometry copies points into a new Geometry.
func NewGeometry(points []Point) Geometry {
	return Geometry{Points: append([]Point(nil), points...)}
}

// Len returns the number of points.
func (g Geometry) Len() int {
	return len(g.Points)
}

// IsEmpty reports whether the geometry has no points.
func (g Geometry) IsEmpty() bool {
	return len(g.Points) == 0
}

// Clone returns a deep copy of the geometry.
func (g Geometry) Clone() Geometry {
	if g.Points == nil {
		return Geometry{}
	}
	return NewGeometry(g.Points)
}

// Equal reports whether both geometries hold identical points in identical order.
func (g Geometry) Equal(other Geometry) bool {
	if len(g.Points) != len(other.Points) {
		return false
	}
	for i := range g.Points {
		if g.Points[i] != other.Points[i] {
			return false
		}
	}
	return true
}

// Finite reports whether every position and normal is a finite vector.
func (g Geometry) Finite() bool {
	for _, p := range g.Points {
		if !FiniteVec(p.Position) || !FiniteVec(p.Normal) {
			return false
		}
	}
	return true
}

// FiniteVec reports whether no component of v is NaN or infinite.
func FiniteVec(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Fingerprint is a cheap proxy for "has this mesh's structure changed".
// It combines the point count with an order-sensitive hash of positions and normals.
type Fingerprint struct {
	PointCount uint64 `json:"pointCount"`
	OrderHash  uint64 `json:"orderHash"`
}

// Equal reports whether both fingerprint fields match.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.PointCount == other.PointCount && f.OrderHash == other.OrderHash
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%d:%016x", f.PointCount, f.OrderHash)
}

// NamedMesh is one named object captured from a retopo or reference collection.
type NamedMesh struct {
	Name        string
	Geometry    Geometry
	Fingerprint Fingerprint
}
