// Package store persists the bundle registry below the workspace directory.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/zerr"
)

// FormatVersion is written into every JSON registry document.
const FormatVersion = 1

var _ ports.RegistryStore = (*JSONStore)(nil)

// JSONStore keeps the whole registry in a single JSON document.
type JSONStore struct {
	path string
}

type registryDocument struct {
	Version int                 `json:"version"`
	Bundles []domain.BakeBundle `json:"bundles"`
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the registry. A missing file yields an empty registry.
func (s *JSONStore) Load(ctx context.Context) (*domain.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	//nolint:gosec // Path is constructed from the workspace root
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewRegistry()
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.path)
	}

	var doc registryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", s.path)
	}

	reg, err := domain.NewRegistry(doc.Bundles...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", s.path)
	}
	return reg, nil
}

// Save replaces the stored registry. The file is written to a temporary
// sibling first and renamed into place.
func (s *JSONStore) Save(ctx context.Context, reg *domain.Registry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := registryDocument{Version: FormatVersion, Bundles: reg.Bundles()}
	if doc.Bundles == nil {
		doc.Bundles = []domain.BakeBundle{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// Close is a no-op; the JSON store holds no open handles.
func (s *JSONStore) Close() error {
	return nil
}
