package domain

import "path/filepath"

const (
	// WorkspaceDirName is the name of the internal workspace directory.
	WorkspaceDirName = ".cagesync"

	// ConfigFileName is the name of the workspace configuration file.
	ConfigFileName = "cagesync.yaml"

	// RegistryJSONFile is the file name of the JSON registry store.
	RegistryJSONFile = "registry.json"

	// RegistrySQLiteFile is the file name of the SQLite registry store.
	RegistrySQLiteFile = "registry.db"

	// DefaultExportDirName is the default export directory, relative to the workspace root.
	DefaultExportDirName = "export"

	// RetopoExportFile is the file name of the exported retopo collection.
	RetopoExportFile = "retopo.yaml"

	// ReferenceExportFile is the file name of the exported reference collection.
	ReferenceExportFile = "reference.yaml"

	// CageExportFile is the file name of the exported cage collection.
	CageExportFile = "cages.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultWorkspacePath returns the workspace metadata directory below root.
func DefaultWorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDirName)
}

// RegistryPath returns the registry store path for the given backend below root.
func RegistryPath(root string, backend StoreBackend) string {
	if backend == StoreSQLite {
		return filepath.Join(root, WorkspaceDirName, RegistrySQLiteFile)
	}
	return filepath.Join(root, WorkspaceDirName, RegistryJSONFile)
}
