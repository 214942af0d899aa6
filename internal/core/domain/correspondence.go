package domain

import (
	"iter"
	"slices"
)

// Pair holds the retopo and reference meshes that share a canonical name.
type Pair struct {
	Retopo    NamedMesh
	Reference NamedMesh
}

// Correspondence maps canonical names to their retopo/reference pair.
// Names are iterated in sorted order.
type Correspondence struct {
	pairs map[string]Pair
	names []string
}

// NewCorrespondence builds a Correspondence from the given pairs.
func NewCorrespondence(pairs map[string]Pair) *Correspondence {
	c := &Correspondence{
		pairs: make(map[string]Pair, len(pairs)),
		names: make([]string, 0, len(pairs)),
	}
	for name, p := range pairs {
		c.pairs[name] = p
		c.names = append(c.names, name)
	}
	slices.Sort(c.names)
	return c
}

// Get returns the pair for name.
func (c *Correspondence) Get(name string) (Pair, bool) {
	p, ok := c.pairs[name]
	return p, ok
}

// Has reports whether name is part of the correspondence.
func (c *Correspondence) Has(name string) bool {
	_, ok := c.pairs[name]
	return ok
}

// Names returns the sorted canonical names.
func (c *Correspondence) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of pairs.
func (c *Correspondence) Len() int {
	return len(c.names)
}

// All yields every pair in name order.
func (c *Correspondence) All() iter.Seq2[string, Pair] {
	return func(yield func(string, Pair) bool) {
		for _, name := range c.names {
			if !yield(name, c.pairs[name]) {
				return
			}
		}
	}
}
