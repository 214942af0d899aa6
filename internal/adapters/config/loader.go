// Package config loads the cagesync workspace configuration.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// DiscoverRoot walks up from cwd and returns the first directory containing
// cagesync.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	current, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}
	for {
		if info, err := l.FS.Stat(filepath.Join(current, domain.ConfigFileName)); err == nil && !info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		current = parent
	}
}

// Load discovers the configuration file above cwd, parses it and applies defaults.
// Relative paths are resolved against the directory holding the file.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, domain.ConfigFileName)
	var ws Workspace
	if err := l.readAndUnmarshalYAML(configPath, &ws); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if ws.Version != "" && ws.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ConfigFileName, ws.Version, SupportedVersion))
	}

	settings, err := buildSettings(root, &ws)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return settings, nil
}

func buildSettings(root string, ws *Workspace) (*domain.Settings, error) {
	s := domain.DefaultSettings()
	s.Root = root

	if ws.Retopo == "" || ws.Reference == "" {
		return nil, domain.ErrMissingSourcePath
	}
	s.RetopoPath = resolvePath(root, ws.Retopo)
	s.ReferencePath = resolvePath(root, ws.Reference)

	if ws.Store.Backend != "" {
		s.Store = domain.StoreBackend(ws.Store.Backend)
	}
	if !s.Store.Valid() {
		return nil, zerr.With(domain.ErrInvalidStoreBackend, "backend", ws.Store.Backend)
	}

	if ws.Import.Scale != nil {
		s.ImportScale = *ws.Import.Scale
	}
	if err := validateScale("import.scale", s.ImportScale); err != nil {
		return nil, err
	}

	if err := applyDefaults(&s.Defaults, &ws.Defaults); err != nil {
		return nil, err
	}

	if err := applyExport(root, &s.Export, &ws.Export); err != nil {
		return nil, err
	}

	if ws.Watch.Debounce != "" {
		d, err := time.ParseDuration(ws.Watch.Debounce)
		if err != nil || d <= 0 {
			return nil, zerr.With(domain.ErrInvalidDebounce, "debounce", ws.Watch.Debounce)
		}
		s.WatchDebounce = d
	}

	return &s, nil
}

func applyDefaults(params *domain.Parameters, dto *DefaultsDTO) error {
	if dto.PeakDistance != nil {
		d := *dto.PeakDistance
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return zerr.With(domain.ErrInvalidPeakDistance, "peak_distance", d)
		}
		params.PeakDistance = d
	}
	if dto.Iterations != nil {
		params.Iterations = *dto.Iterations
	}
	if dto.Visibility != nil {
		params.Visibility = domain.Visibility{
			Retopo:    dto.Visibility.Retopo,
			Reference: dto.Visibility.Reference,
			Cage:      dto.Visibility.Cage,
		}
	}
	return nil
}

func applyExport(root string, export *domain.ExportSettings, dto *ExportDTO) error {
	dir := export.Dir
	if dto.Dir != "" {
		dir = dto.Dir
	}
	export.Dir = resolvePath(root, dir)

	if dto.Scale != nil {
		export.Scale = *dto.Scale
	}
	if err := validateScale("export.scale", export.Scale); err != nil {
		return err
	}
	if dto.UseNameCorrespondence != nil {
		export.UseNameCorrespondence = *dto.UseNameCorrespondence
	}
	if dto.RetopoSuffix != nil {
		export.RetopoSuffix = *dto.RetopoSuffix
	}
	if dto.ReferenceSuffix != nil {
		export.ReferenceSuffix = *dto.ReferenceSuffix
	}
	return nil
}

func validateScale(field string, scale float64) error {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return zerr.With(zerr.With(domain.ErrInvalidScale, "field", field), "scale", scale)
	}
	return nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Workspace) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
