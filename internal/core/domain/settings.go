package domain

import "time"

// StoreBackend selects how the registry is persisted.
type StoreBackend string

const (
	// StoreJSON persists the registry as a single JSON document.
	StoreJSON StoreBackend = "json"
	// StoreSQLite persists the registry in a SQLite database.
	StoreSQLite StoreBackend = "sqlite"
)

// Valid reports whether the backend is known.
func (b StoreBackend) Valid() bool {
	return b == StoreJSON || b == StoreSQLite
}

const (
	// DefaultRetopoSuffix is appended to retopo object names on export.
	DefaultRetopoSuffix = "_low"
	// DefaultReferenceSuffix is appended to reference object names on export.
	DefaultReferenceSuffix = "_high"
	// DefaultWatchDebounce is the default quiet period before a watch-triggered sync.
	DefaultWatchDebounce = 200 * time.Millisecond
)

// ExportSettings control how bundles are written out.
type ExportSettings struct {
	Dir                   string
	Scale                 float64
	UseNameCorrespondence bool
	RetopoSuffix          string
	ReferenceSuffix       string
}

// Settings is the resolved workspace configuration.
type Settings struct {
	// Root is the directory containing the configuration file.
	Root          string
	RetopoPath    string
	ReferencePath string
	Store         StoreBackend
	ImportScale   float64
	Defaults      Parameters
	Export        ExportSettings
	WatchDebounce time.Duration
}

// DefaultSettings returns the settings used for any value the config file omits.
func DefaultSettings() Settings {
	return Settings{
		Store:       StoreJSON,
		ImportScale: 1,
		Defaults:    DefaultParameters(),
		Export: ExportSettings{
			Dir:                   DefaultExportDirName,
			Scale:                 1,
			UseNameCorrespondence: true,
			RetopoSuffix:          DefaultRetopoSuffix,
			ReferenceSuffix:       DefaultReferenceSuffix,
		},
		WatchDebounce: DefaultWatchDebounce,
	}
}
