package synchronizer

import (
	"context"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r3"
)

// Reset restores the named bundle's cage to its default: a fresh cage generated
// from the current reference mesh with the default peak distance, no edits and
// a zero translate offset. Iterations and visibility are kept.
//
// On any failure the input registry is returned unchanged together with the error.
func (s *Synchronizer) Reset(
	ctx context.Context,
	reg *domain.Registry,
	corr *domain.Correspondence,
	name string,
	defaults domain.Parameters,
) (*domain.Registry, error) {
	ctx, span := s.tracer.Start(ctx, "Resetting Bundle")
	defer span.End()

	bundle, ok := reg.Get(name)
	if !ok {
		err := &domain.UnknownNameError{Name: name}
		span.RecordError(err)
		return reg, err
	}

	pair, ok := corr.Get(name)
	if !ok {
		err := zerr.With(domain.ErrMissingReference, "name", name)
		span.RecordError(err)
		return reg, err
	}

	cageGeom, err := s.generate(ctx, pair.Reference, defaults.PeakDistance)
	if err != nil {
		return reg, err
	}

	bundle.Cage = cageGeom
	bundle.Edits = domain.NewEditSubgraph()
	bundle.Status = domain.StatusClean
	bundle.Params.Translate = r3.Vec{}
	bundle.Params.PeakDistance = defaults.PeakDistance
	bundle.CagePeakDistance = defaults.PeakDistance
	bundle.LastFingerprint = pair.Reference.Fingerprint

	next := reg.Clone()
	if err := next.Put(bundle); err != nil {
		return reg, err
	}
	return next, nil
}

// Rebuild regenerates the named bundle's cage from its current reference mesh
// with the bundle's own peak distance. Edits and the translate offset are kept;
// they apply on top of the regenerated cage.
//
// The reference must be the one the last synchronization saw, and a bundle
// awaiting inspection must be accepted first. On any failure the input
// registry is returned unchanged together with the error.
func (s *Synchronizer) Rebuild(
	ctx context.Context,
	reg *domain.Registry,
	corr *domain.Correspondence,
	name string,
) (*domain.Registry, error) {
	ctx, span := s.tracer.Start(ctx, "Rebuilding Bundle")
	defer span.End()

	bundle, ok := reg.Get(name)
	if !ok {
		err := &domain.UnknownNameError{Name: name}
		span.RecordError(err)
		return reg, err
	}
	if bundle.Status == domain.StatusNeedsInspection {
		err := zerr.With(domain.ErrBundleNeedsInspection, "name", name)
		span.RecordError(err)
		return reg, err
	}

	pair, ok := corr.Get(name)
	if !ok {
		err := zerr.With(domain.ErrMissingReference, "name", name)
		span.RecordError(err)
		return reg, err
	}
	if !pair.Reference.Fingerprint.Equal(bundle.LastFingerprint) {
		err := zerr.With(domain.ErrReferenceChanged, "name", name)
		span.RecordError(err)
		return reg, err
	}

	cageGeom, err := s.generate(ctx, pair.Reference, bundle.Params.PeakDistance)
	if err != nil {
		return reg, err
	}

	bundle.Cage = cageGeom
	bundle.CagePeakDistance = bundle.Params.PeakDistance
	bundle.Status = domain.StatusClean

	next := reg.Clone()
	if err := next.Put(bundle); err != nil {
		return reg, err
	}
	return next, nil
}
