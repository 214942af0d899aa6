package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Registry is the ordered set of bake bundles, one per canonical name.
// Iteration follows creation order.
type Registry struct {
	order   []string
	bundles map[string]BakeBundle
}

// NewRegistry creates a registry holding the given bundles in order.
// It fails if two bundles share a name.
func NewRegistry(bundles ...BakeBundle) (*Registry, error) {
	r := &Registry{
		order:   make([]string, 0, len(bundles)),
		bundles: make(map[string]BakeBundle, len(bundles)),
	}
	for _, b := range bundles {
		if err := r.Add(b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Len returns the number of bundles.
func (r *Registry) Len() int {
	return len(r.order)
}

// Has reports whether a bundle named name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.bundles[name]
	return ok
}

// Get returns a copy of the named bundle.
func (r *Registry) Get(name string) (BakeBundle, bool) {
	b, ok := r.bundles[name]
	if !ok {
		return BakeBundle{}, false
	}
	return b.Clone(), true
}

// Names returns bundle names in creation order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// All yields copies of every bundle in creation order.
func (r *Registry) All() iter.Seq[BakeBundle] {
	return func(yield func(BakeBundle) bool) {
		for _, name := range r.order {
			if !yield(r.bundles[name].Clone()) {
				return
			}
		}
	}
}

// Bundles returns copies of every bundle in creation order.
func (r *Registry) Bundles() []BakeBundle {
	return slices.Collect(r.All())
}

// Add appends a new bundle at the end of the creation order.
func (r *Registry) Add(b BakeBundle) error {
	if _, ok := r.bundles[b.Name]; ok {
		return zerr.With(ErrBundleExists, "name", b.Name)
	}
	r.order = append(r.order, b.Name)
	r.bundles[b.Name] = b.Clone()
	return nil
}

// Put replaces an existing bundle in place, keeping its position.
func (r *Registry) Put(b BakeBundle) error {
	if _, ok := r.bundles[b.Name]; !ok {
		return &UnknownNameError{Name: b.Name}
	}
	r.bundles[b.Name] = b.Clone()
	return nil
}

// Remove deletes the named bundle and reports whether it existed.
func (r *Registry) Remove(name string) bool {
	if _, ok := r.bundles[name]; !ok {
		return false
	}
	delete(r.bundles, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	return true
}

// Clone returns an independent deep copy.
func (r *Registry) Clone() *Registry {
	out := &Registry{
		order:   slices.Clone(r.order),
		bundles: make(map[string]BakeBundle, len(r.bundles)),
	}
	if out.order == nil {
		out.order = []string{}
	}
	for name, b := range r.bundles {
		out.bundles[name] = b.Clone()
	}
	return out
}

// Equal reports whether both registries hold identical bundles in identical order.
func (r *Registry) Equal(other *Registry) bool {
	if !slices.Equal(r.order, other.order) {
		return false
	}
	for _, name := range r.order {
		a, b := r.bundles[name], other.bundles[name]
		if a.Name != b.Name ||
			a.Status != b.Status ||
			a.Params != b.Params ||
			a.CagePeakDistance != b.CagePeakDistance ||
			!a.LastFingerprint.Equal(b.LastFingerprint) ||
			!a.Cage.Equal(b.Cage) ||
			!a.Edits.Equal(b.Edits) {
			return false
		}
	}
	return true
}
