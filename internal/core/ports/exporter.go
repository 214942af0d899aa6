package ports

import (
	"context"

	"go.trai.ch/cagesync/internal/core/domain"
)

// Exporter writes bundles and their source meshes to output files.
//
//go:generate mockgen -source=exporter.go -destination=mocks/mock_exporter.go -package=mocks
type Exporter interface {
	// Export writes the selected collections and returns the written file paths.
	Export(ctx context.Context, items []domain.ExportItem, opts domain.ExportOptions) ([]string, error)
}
