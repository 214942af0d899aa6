package domain

// ExportItem is one bundle together with its current source meshes, ready to
// be written out.
type ExportItem struct {
	Bundle    BakeBundle
	Retopo    NamedMesh
	Reference NamedMesh
}

// ExportOptions select what to write and how to name it.
type ExportOptions struct {
	Dir                   string
	Scale                 float64
	UseNameCorrespondence bool
	RetopoSuffix          string
	ReferenceSuffix       string
	Retopo                bool
	Reference             bool
	Cage                  bool
}

// RetopoName returns the exported object name for a retopo mesh.
func (o ExportOptions) RetopoName(name string) string {
	if !o.UseNameCorrespondence {
		return name
	}
	return name + o.RetopoSuffix
}

// ReferenceName returns the exported object name for a reference mesh.
func (o ExportOptions) ReferenceName(name string) string {
	if !o.UseNameCorrespondence {
		return name
	}
	return name + o.ReferenceSuffix
}
