package store

import (
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StoreOpener = (*Opener)(nil)

// Opener creates registry stores for a workspace root.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns the store for backend below root.
func (o *Opener) Open(root string, backend domain.StoreBackend) (ports.RegistryStore, error) {
	path := domain.RegistryPath(root, backend)
	switch backend {
	case domain.StoreJSON:
		return NewJSONStore(path), nil
	case domain.StoreSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, zerr.With(domain.ErrInvalidStoreBackend, "backend", string(backend))
	}
}
