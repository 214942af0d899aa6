package domain

// Side identifies which source collection a mesh was captured from.
type Side string

const (
	// SideRetopo is the low resolution collection.
	SideRetopo Side = "retopo"
	// SideReference is the high resolution collection.
	SideReference Side = "reference"
)

// Snapshot is the immutable capture of both source collections for one import pass.
type Snapshot struct {
	retopo    []NamedMesh
	reference []NamedMesh
}

// NewSnapshot captures both collections. The slices are copied so later
// changes by the caller do not leak into the snapshot.
func NewSnapshot(retopo, reference []NamedMesh) *Snapshot {
	return &Snapshot{
		retopo:    cloneMeshes(retopo),
		reference: cloneMeshes(reference),
	}
}

// Retopo returns a copy of the retopo collection.
func (s *Snapshot) Retopo() []NamedMesh {
	return cloneMeshes(s.retopo)
}

// Reference returns a copy of the reference collection.
func (s *Snapshot) Reference() []NamedMesh {
	return cloneMeshes(s.reference)
}

// IsEmpty reports whether both collections are empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.retopo) == 0 && len(s.reference) == 0
}

func cloneMeshes(meshes []NamedMesh) []NamedMesh {
	if meshes == nil {
		return nil
	}
	out := make([]NamedMesh, len(meshes))
	for i, m := range meshes {
		out[i] = NamedMesh{
			Name:        m.Name,
			Geometry:    m.Geometry.Clone(),
			Fingerprint: m.Fingerprint,
		}
	}
	return out
}
