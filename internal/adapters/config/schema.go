package config

// Workspace is the structure of the cagesync.yaml configuration file.
type Workspace struct {
	Version   string      `yaml:"version"`
	Retopo    string      `yaml:"retopo"`
	Reference string      `yaml:"reference"`
	Store     StoreDTO    `yaml:"store"`
	Import    ImportDTO   `yaml:"import"`
	Defaults  DefaultsDTO `yaml:"defaults"`
	Export    ExportDTO   `yaml:"export"`
	Watch     WatchDTO    `yaml:"watch"`
}

// StoreDTO selects the registry backend.
type StoreDTO struct {
	Backend string `yaml:"backend"`
}

// ImportDTO configures how source collections are read.
type ImportDTO struct {
	Scale *float64 `yaml:"scale"`
}

// DefaultsDTO holds the parameters given to newly created bundles.
type DefaultsDTO struct {
	PeakDistance *float64       `yaml:"peakDistance"`
	Iterations   *uint          `yaml:"iterations"`
	Visibility   *VisibilityDTO `yaml:"visibility"`
}

// VisibilityDTO holds display toggles.
type VisibilityDTO struct {
	Retopo    bool `yaml:"retopo"`
	Reference bool `yaml:"reference"`
	Cage      bool `yaml:"cage"`
}

// ExportDTO configures the export collaborator.
type ExportDTO struct {
	Dir                   string   `yaml:"dir"`
	Scale                 *float64 `yaml:"scale"`
	UseNameCorrespondence *bool    `yaml:"useNameCorrespondence"`
	RetopoSuffix          *string  `yaml:"retopoSuffix"`
	ReferenceSuffix       *string  `yaml:"referenceSuffix"`
}

// WatchDTO configures the watch command.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}
