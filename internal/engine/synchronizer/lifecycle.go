package synchronizer

import (
	"fmt"
	"math"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
)

// AppendEdit adds op to the end of the named bundle's edit subgraph.
func AppendEdit(reg *domain.Registry, name string, op domain.EditOp) (*domain.Registry, error) {
	bundle, ok := reg.Get(name)
	if !ok {
		return reg, &domain.UnknownNameError{Name: name}
	}

	edits, err := bundle.Edits.Append(op)
	if err != nil {
		return reg, zerr.With(err, "name", name)
	}
	bundle.Edits = edits

	next := reg.Clone()
	if err := next.Put(bundle); err != nil {
		return reg, err
	}
	return next, nil
}

// Accept marks an inspected bundle as reviewed. A bundle whose cage no longer
// matches its parameters becomes stale instead of clean. Accepting a clean
// bundle changes nothing; accepting a stale bundle fails.
func Accept(reg *domain.Registry, name string) (*domain.Registry, domain.Status, error) {
	bundle, ok := reg.Get(name)
	if !ok {
		return reg, 0, &domain.UnknownNameError{Name: name}
	}

	switch bundle.Status {
	case domain.StatusClean:
		return reg, bundle.Status, nil
	case domain.StatusStale:
		return reg, bundle.Status, zerr.With(domain.ErrBundleStale, "name", name)
	}

	bundle.Status = statusFor(bundle)

	next := reg.Clone()
	if err := next.Put(bundle); err != nil {
		return reg, 0, err
	}
	return next, bundle.Status, nil
}

// Configure applies update to the named bundle's parameters.
//
// A bundle that is not awaiting inspection moves between clean and stale as its
// peak distance diverges from or returns to the distance its cage was built with.
func Configure(
	reg *domain.Registry,
	name string,
	update func(*domain.Parameters),
) (*domain.Registry, domain.BakeBundle, error) {
	bundle, ok := reg.Get(name)
	if !ok {
		return reg, domain.BakeBundle{}, &domain.UnknownNameError{Name: name}
	}

	params := bundle.Params
	update(&params)
	if !validPeakDistance(params.PeakDistance) {
		return reg, domain.BakeBundle{}, zerr.With(domain.ErrInvalidPeakDistance, "peak_distance", params.PeakDistance)
	}
	if !domain.FiniteVec(params.Translate) {
		return reg, domain.BakeBundle{}, zerr.With(domain.ErrInvalidVector, "translate", fmt.Sprint(params.Translate))
	}
	bundle.Params = params

	if bundle.Status != domain.StatusNeedsInspection {
		bundle.Status = statusFor(bundle)
	}

	next := reg.Clone()
	if err := next.Put(bundle); err != nil {
		return reg, domain.BakeBundle{}, err
	}
	return next, bundle, nil
}

func statusFor(bundle domain.BakeBundle) domain.Status {
	if bundle.CageMatchesParams() {
		return domain.StatusClean
	}
	return domain.StatusStale
}

func validPeakDistance(d float64) bool {
	return d >= 0 && !math.IsInf(d, 0)
}
