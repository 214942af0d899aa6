// Package correspondence pairs retopo and reference meshes by canonical name.
package correspondence

import (
	"slices"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolve pairs every retopo mesh with the reference mesh of the same name.
//
// Checks run in a fixed order: duplicate names within one side, then differing
// collection sizes, then differing name sets. Resolve has no side effects.
func Resolve(retopo, reference []domain.NamedMesh) (*domain.Correspondence, error) {
	retopoByName, err := index(domain.SideRetopo, retopo)
	if err != nil {
		return nil, err
	}
	referenceByName, err := index(domain.SideReference, reference)
	if err != nil {
		return nil, err
	}

	mismatch := diff(retopoByName, referenceByName)

	if len(retopoByName) != len(referenceByName) {
		return nil, &domain.CardinalityError{
			RetopoCount:    len(retopoByName),
			ReferenceCount: len(referenceByName),
			Mismatch:       mismatch,
		}
	}

	if mismatch != nil {
		return nil, mismatch
	}

	pairs := make(map[string]domain.Pair, len(retopoByName))
	for name, r := range retopoByName {
		pairs[name] = domain.Pair{Retopo: r, Reference: referenceByName[name]}
	}
	return domain.NewCorrespondence(pairs), nil
}

func index(side domain.Side, meshes []domain.NamedMesh) (map[string]domain.NamedMesh, error) {
	byName := make(map[string]domain.NamedMesh, len(meshes))
	for _, m := range meshes {
		if _, ok := byName[m.Name]; ok {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateName, "side", string(side)), "name", m.Name)
		}
		byName[m.Name] = m
	}
	return byName, nil
}

// diff returns the symmetric difference of both name sets, or nil when they match.
func diff(retopo, reference map[string]domain.NamedMesh) *domain.NameMismatchError {
	var onlyRetopo, onlyReference []string
	for name := range retopo {
		if _, ok := reference[name]; !ok {
			onlyRetopo = append(onlyRetopo, name)
		}
	}
	for name := range reference {
		if _, ok := retopo[name]; !ok {
			onlyReference = append(onlyReference, name)
		}
	}
	if len(onlyRetopo) == 0 && len(onlyReference) == 0 {
		return nil
	}
	slices.Sort(onlyRetopo)
	slices.Sort(onlyReference)
	return &domain.NameMismatchError{OnlyInRetopo: onlyRetopo, OnlyInReference: onlyReference}
}
