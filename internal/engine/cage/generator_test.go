package cage_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/engine/cage"
	"gonum.org/v1/gonum/spatial/r3"
)

func sphereish() domain.NamedMesh {
	return domain.NamedMesh{
		Name: "body",
		Geometry: domain.NewGeometry([]domain.Point{
			{Position: r3.Vec{X: 1}, Normal: r3.Vec{X: 2}},
			{Position: r3.Vec{Y: 1}, Normal: r3.Vec{Y: 1}},
			{Position: r3.Vec{Z: -1}, Normal: r3.Vec{Z: -0.5}},
		}),
		Fingerprint: domain.Fingerprint{PointCount: 3, OrderHash: 42},
	}
}

func TestGenerate_ZeroDistanceIsCoincident(t *testing.T) {
	ref := sphereish()
	g := cage.NewGenerator()

	got, err := g.Generate(ref, 0)
	require.NoError(t, err)
	assert.True(t, got.Equal(ref.Geometry))
}

func TestGenerate_DisplacesAlongUnitNormals(t *testing.T) {
	g := cage.NewGenerator()

	got, err := g.Generate(sphereish(), 0.5)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	assert.InDelta(t, 1.5, got.Points[0].Position.X, 1e-12)
	assert.InDelta(t, 1.5, got.Points[1].Position.Y, 1e-12)
	assert.InDelta(t, -1.5, got.Points[2].Position.Z, 1e-12)
	// Normals are carried over unchanged.
	assert.Equal(t, r3.Vec{X: 2}, got.Points[0].Normal)
}

func TestGenerate_DistinctDistancesDiffer(t *testing.T) {
	g := cage.NewGenerator()

	a, err := g.Generate(sphereish(), 0.1)
	require.NoError(t, err)
	b, err := g.Generate(sphereish(), 0.2)
	require.NoError(t, err)
	assert.False(t, a.Equal(b))

	again, err := g.Generate(sphereish(), 0.1)
	require.NoError(t, err)
	assert.True(t, a.Equal(again), "generation must be deterministic")
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	ref := sphereish()
	before := ref.Geometry.Clone()

	got, err := cage.NewGenerator().Generate(ref, 3)
	require.NoError(t, err)
	got.Points[0].Position.X = 100

	assert.True(t, ref.Geometry.Equal(before))
}

func TestGenerate_ZeroNormalStaysInPlace(t *testing.T) {
	ref := domain.NamedMesh{
		Name: "flat",
		Geometry: domain.NewGeometry([]domain.Point{
			{Position: r3.Vec{X: 4, Y: 5, Z: 6}},
		}),
	}

	got, err := cage.NewGenerator().Generate(ref, 2)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 4, Y: 5, Z: 6}, got.Points[0].Position)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mesh     domain.NamedMesh
		distance float64
		want     error
	}{
		{
			name:     "empty reference",
			mesh:     domain.NamedMesh{Name: "empty"},
			distance: 1,
			want:     domain.ErrEmptyReference,
		},
		{
			name: "non-finite position",
			mesh: domain.NamedMesh{
				Name:     "broken",
				Geometry: domain.NewGeometry([]domain.Point{{Position: r3.Vec{X: math.Inf(1)}}}),
			},
			distance: 1,
			want:     domain.ErrDegenerateReference,
		},
		{
			name: "non-finite normal",
			mesh: domain.NamedMesh{
				Name: "helmet",
				Geometry: domain.NewGeometry([]domain.Point{
					{Position: r3.Vec{X: 1}, Normal: r3.Vec{X: math.NaN()}},
				}),
			},
			distance: 0,
			want:     domain.ErrDegenerateReference,
		},
		{
			name:     "NaN distance",
			mesh:     sphereish(),
			distance: math.NaN(),
			want:     domain.ErrInvalidPeakDistance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cage.NewGenerator().Generate(tt.mesh, tt.distance)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}
