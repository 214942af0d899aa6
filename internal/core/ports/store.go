package ports

import (
	"context"

	"go.trai.ch/cagesync/internal/core/domain"
)

// RegistryStore persists the whole bundle registry as one unit.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RegistryStore interface {
	// Load returns the persisted registry, or an empty registry if none was saved yet.
	Load(ctx context.Context) (*domain.Registry, error)

	// Save replaces the persisted registry. A failed save leaves the previous one intact.
	Save(ctx context.Context, registry *domain.Registry) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreOpener opens the registry store of a workspace.
type StoreOpener interface {
	// Open returns the store for the given workspace root and backend.
	Open(root string, backend domain.StoreBackend) (RegistryStore, error)
}
