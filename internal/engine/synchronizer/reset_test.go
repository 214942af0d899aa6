package synchronizer_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports/mocks"
	"go.trai.ch/cagesync/internal/engine/synchronizer"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/spatial/r3"
)

func seeded(t *testing.T, s *synchronizer.Synchronizer, meshes ...domain.NamedMesh) *domain.Registry {
	t.Helper()
	reg, report := s.Synchronize(context.Background(), emptyRegistry(t), resolve(t, meshes...), defaults())
	require.NoError(t, report.Err())
	return reg
}

func TestReset_ClearsEdits(t *testing.T) {
	s := newSynchronizer(t)
	ctx := context.Background()
	reg := seeded(t, s, mesh("body", 1))

	reg, err := synchronizer.AppendEdit(reg, "body", domain.EditOp{Kind: "push"})
	require.NoError(t, err)
	reg, _, err = synchronizer.Configure(reg, "body", func(p *domain.Parameters) {
		p.Translate = r3.Vec{X: 1, Y: 2, Z: 3}
		p.Iterations = 4
		p.PeakDistance = 1
	})
	require.NoError(t, err)

	// The reference changed since the bundle was created.
	corr := resolve(t, mesh("body", 7))
	reg, _ = s.Synchronize(ctx, reg, corr, defaults())

	next, err := s.Reset(ctx, reg, corr, "body", defaults())
	require.NoError(t, err)

	got, _ := next.Get("body")
	assert.True(t, got.Edits.IsEmpty())
	assert.Equal(t, []string{domain.EditBeginAnchor, domain.EditEndAnchor}, got.Edits.Nodes())
	assert.Equal(t, domain.StatusClean, got.Status)
	assert.Equal(t, r3.Vec{}, got.Params.Translate)
	assert.Equal(t, uint(4), got.Params.Iterations)
	// The cage returns to the default peak distance, not the configured one.
	assert.InDelta(t, 0.25, got.Params.PeakDistance, 0)
	assert.InDelta(t, 0.25, got.CagePeakDistance, 0)
	assert.Equal(t, uint64(7), got.LastFingerprint.OrderHash)
	assert.InDelta(t, 7.0, got.Cage.Points[0].Position.X, 1e-12)
	assert.InDelta(t, 0.25, got.Cage.Points[0].Position.Z, 1e-12)

	// Resetting does not alter the registry passed in.
	prev, _ := reg.Get("body")
	assert.Equal(t, 1, prev.Edits.Len())
}

func TestReset_UnknownName(t *testing.T) {
	s := newSynchronizer(t)
	reg := seeded(t, s, mesh("body", 1))

	next, err := s.Reset(context.Background(), reg, resolve(t, mesh("body", 1)), "ghost", defaults())
	require.ErrorIs(t, err, domain.ErrUnknownName)
	assert.Same(t, reg, next)

	var unknown *domain.UnknownNameError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
}

func TestReset_MissingReference(t *testing.T) {
	s := newSynchronizer(t)
	reg := seeded(t, s, mesh("body", 1), mesh("helmet", 1))

	_, err := s.Reset(context.Background(), reg, resolve(t, mesh("body", 1)), "helmet", defaults())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingReference.Error())
}

func TestReset_GenerationFailureKeepsBundle(t *testing.T) {
	s := newSynchronizer(t)
	reg := seeded(t, s, mesh("body", 1))
	reg, err := synchronizer.AppendEdit(reg, "body", domain.EditOp{Kind: "push"})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	generator := mocks.NewMockCageGenerator(ctrl)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(domain.Geometry{}, domain.ErrDegenerateReference)
	failing := synchronizer.New(generator, newTracer(ctrl))

	next, err := failing.Reset(context.Background(), reg, resolve(t, mesh("body", 1)), "body", defaults())
	require.ErrorIs(t, err, domain.ErrGeneration)
	assert.Same(t, reg, next)

	body, _ := next.Get("body")
	assert.Equal(t, 1, body.Edits.Len())
}

func TestAccept(t *testing.T) {
	s := newSynchronizer(t)
	ctx := context.Background()
	reg := seeded(t, s, mesh("body", 1), mesh("helmet", 1))
	reg, _ = s.Synchronize(ctx, reg, resolve(t, mesh("body", 2), mesh("helmet", 2)), defaults())

	// body: inspected with matching parameters.
	reg, status, err := synchronizer.Accept(reg, "body")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClean, status)

	// helmet: parameters drifted while awaiting inspection.
	reg, _, err = synchronizer.Configure(reg, "helmet", func(p *domain.Parameters) { p.PeakDistance = 2 })
	require.NoError(t, err)
	helmet, _ := reg.Get("helmet")
	assert.Equal(t, domain.StatusNeedsInspection, helmet.Status)

	reg, status, err = synchronizer.Accept(reg, "helmet")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStale, status)

	_, _, err = synchronizer.Accept(reg, "helmet")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBundleStale.Error())

	same, status, err := synchronizer.Accept(reg, "body")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClean, status)
	assert.Same(t, reg, same)

	_, _, err = synchronizer.Accept(reg, "ghost")
	require.ErrorIs(t, err, domain.ErrUnknownName)
}

func TestConfigure_StaleTracksPeakDistance(t *testing.T) {
	s := newSynchronizer(t)
	reg := seeded(t, s, mesh("body", 1))

	reg, bundle, err := synchronizer.Configure(reg, "body", func(p *domain.Parameters) { p.PeakDistance = 0.5 })
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStale, bundle.Status)

	reg, bundle, err = synchronizer.Configure(reg, "body", func(p *domain.Parameters) { p.PeakDistance = 0.25 })
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClean, bundle.Status)

	reg, bundle, err = synchronizer.Configure(reg, "body", func(p *domain.Parameters) {
		p.Visibility.Retopo = true
		p.Iterations = 2
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClean, bundle.Status)
	assert.True(t, bundle.Params.Visibility.Retopo)

	_, _, err = synchronizer.Configure(reg, "body", func(p *domain.Parameters) { p.PeakDistance = -1 })
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidPeakDistance.Error())
}

func TestConfigure_RejectsNonFiniteTranslate(t *testing.T) {
	s := newSynchronizer(t)
	reg := seeded(t, s, mesh("body", 1))

	for name, v := range map[string]r3.Vec{
		"positive infinity": {X: math.Inf(1)},
		"negative infinity": {Y: math.Inf(-1)},
		"NaN":               {Z: math.NaN()},
	} {
		t.Run(name, func(t *testing.T) {
			next, _, err := synchronizer.Configure(reg, "body", func(p *domain.Parameters) { p.Translate = v })
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidVector.Error())
			assert.Same(t, reg, next)

			_, err = json.Marshal(next.Bundles())
			require.NoError(t, err)
		})
	}
}

func TestRebuild_AppliesPeakDistanceAndKeepsEdits(t *testing.T) {
	s := newSynchronizer(t)
	ctx := context.Background()
	reg := seeded(t, s, mesh("body", 1))

	reg, err := synchronizer.AppendEdit(reg, "body", domain.EditOp{Kind: "push"})
	require.NoError(t, err)
	reg, bundle, err := synchronizer.Configure(reg, "body", func(p *domain.Parameters) {
		p.PeakDistance = 1
		p.Translate = r3.Vec{Y: 2}
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusStale, bundle.Status)

	next, err := s.Rebuild(ctx, reg, resolve(t, mesh("body", 1)), "body")
	require.NoError(t, err)

	got, _ := next.Get("body")
	assert.Equal(t, domain.StatusClean, got.Status)
	assert.InDelta(t, 1.0, got.CagePeakDistance, 0)
	assert.InDelta(t, 1.0, got.Cage.Points[0].Position.Z, 1e-12)
	assert.Equal(t, 1, got.Edits.Len())
	assert.Equal(t, r3.Vec{Y: 2}, got.Params.Translate)

	prev, _ := reg.Get("body")
	assert.Equal(t, domain.StatusStale, prev.Status)
}

func TestRebuild_Errors(t *testing.T) {
	s := newSynchronizer(t)
	ctx := context.Background()
	reg := seeded(t, s, mesh("body", 1), mesh("helmet", 1))
	flagged, _ := s.Synchronize(ctx, reg, resolve(t, mesh("body", 1), mesh("helmet", 2)), defaults())

	tests := []struct {
		name   string
		reg    *domain.Registry
		corr   *domain.Correspondence
		target string
		want   error
	}{
		{"unknown name", reg, resolve(t, mesh("body", 1)), "ghost", domain.ErrUnknownName},
		{"reference changed", reg, resolve(t, mesh("body", 1), mesh("helmet", 9)), "helmet", domain.ErrReferenceChanged},
		{"needs inspection", flagged, resolve(t, mesh("body", 1), mesh("helmet", 2)), "helmet", domain.ErrBundleNeedsInspection},
		{"missing reference", reg, resolve(t, mesh("body", 1)), "helmet", domain.ErrMissingReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := s.Rebuild(ctx, tt.reg, tt.corr, tt.target)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
			assert.Same(t, tt.reg, next)
		})
	}
}

func TestAppendEdit_Errors(t *testing.T) {
	s := newSynchronizer(t)
	reg := seeded(t, s, mesh("body", 1))

	_, err := synchronizer.AppendEdit(reg, "ghost", domain.EditOp{Kind: "push"})
	require.ErrorIs(t, err, domain.ErrUnknownName)

	_, err = synchronizer.AppendEdit(reg, "body", domain.EditOp{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidEditOp.Error())
}
