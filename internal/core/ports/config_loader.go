package ports

import "go.trai.ch/cagesync/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers cagesync.yaml from cwd upwards and returns the resolved settings.
	Load(cwd string) (*domain.Settings, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing cagesync.yaml.
	DiscoverRoot(cwd string) (string, error)
}
