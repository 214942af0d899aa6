// Package synchronizer reconciles the bundle registry with the current source collections.
package synchronizer

import (
	"context"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/cagesync/internal/engine/correspondence"
)

// Synchronizer applies create, delete, retain and flag actions to a registry.
// It never regenerates the cage of an existing bundle; only Reset does.
type Synchronizer struct {
	generator ports.CageGenerator
	tracer    ports.Tracer
}

// New creates a new Synchronizer.
func New(generator ports.CageGenerator, tracer ports.Tracer) *Synchronizer {
	return &Synchronizer{
		generator: generator,
		tracer:    tracer,
	}
}

// SynchronizeSnapshot resolves the snapshot and synchronizes the registry against it.
// When resolution fails the input registry is returned unchanged along with the error.
func (s *Synchronizer) SynchronizeSnapshot(
	ctx context.Context,
	reg *domain.Registry,
	snap *domain.Snapshot,
	defaults domain.Parameters,
) (*domain.Registry, *domain.SyncReport, error) {
	ctx, span := s.tracer.Start(ctx, "Resolving Correspondence")
	corr, err := correspondence.Resolve(snap.Retopo(), snap.Reference())
	if err != nil {
		span.RecordError(err)
		span.End()
		return reg, nil, err
	}
	span.SetAttribute("cagesync.pairs", corr.Len())
	span.End()

	next, report := s.Synchronize(ctx, reg, corr, defaults)
	return next, report, nil
}

// Synchronize returns a new registry reconciled with corr and a report with one
// entry per name. The input registry is not modified.
//
// Existing bundles are visited in creation order, then new names are created in
// name order. A bundle whose cage cannot be generated is left out and reported
// as a failed entry; the rest of the pass proceeds.
func (s *Synchronizer) Synchronize(
	ctx context.Context,
	reg *domain.Registry,
	corr *domain.Correspondence,
	defaults domain.Parameters,
) (*domain.Registry, *domain.SyncReport) {
	ctx, span := s.tracer.Start(ctx, "Synchronizing Bundles")
	defer span.End()

	next := reg.Clone()
	report := &domain.SyncReport{}

	for _, name := range reg.Names() {
		bundle, _ := next.Get(name)
		pair, ok := corr.Get(name)
		switch {
		case !ok:
			next.Remove(name)
			report.Add(domain.ReportEntry{Name: name, Action: domain.ActionDelete, Status: bundle.Status})
		case bundle.LastFingerprint.Equal(pair.Reference.Fingerprint):
			report.Add(domain.ReportEntry{Name: name, Action: domain.ActionRetain, Status: bundle.Status})
		default:
			bundle.Status = domain.StatusNeedsInspection
			bundle.LastFingerprint = pair.Reference.Fingerprint
			_ = next.Put(bundle)
			report.Add(domain.ReportEntry{Name: name, Action: domain.ActionFlag, Status: bundle.Status})
		}
	}

	for name, pair := range corr.All() {
		if reg.Has(name) {
			continue
		}
		entry := s.create(ctx, next, pair, defaults)
		if entry.Err != nil {
			span.RecordError(entry.Err)
		}
		report.Add(entry)
	}

	span.SetAttribute("cagesync.created", report.Count(domain.ActionCreate))
	span.SetAttribute("cagesync.deleted", report.Count(domain.ActionDelete))
	span.SetAttribute("cagesync.flagged", report.Count(domain.ActionFlag))

	return next, report
}

func (s *Synchronizer) create(
	ctx context.Context,
	reg *domain.Registry,
	pair domain.Pair,
	defaults domain.Parameters,
) domain.ReportEntry {
	name := pair.Reference.Name
	cageGeom, err := s.generate(ctx, pair.Reference, defaults.PeakDistance)
	if err != nil {
		return domain.ReportEntry{Name: name, Action: domain.ActionCreate, Err: err}
	}

	bundle := domain.BakeBundle{
		Name:             name,
		Cage:             cageGeom,
		Params:           defaults,
		CagePeakDistance: defaults.PeakDistance,
		LastFingerprint:  pair.Reference.Fingerprint,
		Status:           domain.StatusClean,
	}
	if err := reg.Add(bundle); err != nil {
		return domain.ReportEntry{Name: name, Action: domain.ActionCreate, Err: err}
	}
	return domain.ReportEntry{Name: name, Action: domain.ActionCreate, Status: domain.StatusClean}
}

// generate runs the cage generator inside its own span and wraps failures
// in a GenerationError.
func (s *Synchronizer) generate(ctx context.Context, reference domain.NamedMesh, peakDistance float64) (domain.Geometry, error) {
	_, span := s.tracer.Start(ctx, "Generating Cage",
		ports.WithAttribute("cagesync.bundle", reference.Name),
		ports.WithAttribute("cagesync.peak_distance", peakDistance),
	)
	defer span.End()

	geom, err := s.generator.Generate(reference, peakDistance)
	if err != nil {
		genErr := &domain.GenerationError{Name: reference.Name, Cause: err}
		span.RecordError(genErr)
		return domain.Geometry{}, genErr
	}
	span.SetAttribute("cagesync.points", geom.Len())
	return geom, nil
}
