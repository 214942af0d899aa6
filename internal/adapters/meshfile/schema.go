package meshfile

// Document is the on-disk layout of a mesh collection file.
type Document struct {
	Version string      `yaml:"version,omitempty"`
	Objects []ObjectDTO `yaml:"objects"`
}

// ObjectDTO is one named object in a collection file.
type ObjectDTO struct {
	Name   string     `yaml:"name"`
	Points []PointDTO `yaml:"points"`
}

// PointDTO is one point: position and normal as three-component lists.
type PointDTO struct {
	P []float64 `yaml:"p,flow"`
	N []float64 `yaml:"n,flow"`
}
