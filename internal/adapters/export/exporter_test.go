package export_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/adapters/export"
	"go.trai.ch/cagesync/internal/adapters/meshfile"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/spatial/r3"
)

func item(name string, status domain.Status) domain.ExportItem {
	geom := domain.NewGeometry([]domain.Point{{Position: r3.Vec{X: 1, Y: 2, Z: 3}, Normal: r3.Vec{Z: 1}}})
	params := domain.DefaultParameters()
	params.Translate = r3.Vec{X: 10}
	return domain.ExportItem{
		Bundle: domain.BakeBundle{
			Name:   name,
			Cage:   geom,
			Params: params,
			Status: status,
		},
		Retopo:    domain.NamedMesh{Name: name, Geometry: geom},
		Reference: domain.NamedMesh{Name: name, Geometry: geom},
	}
}

func options(dir string) domain.ExportOptions {
	return domain.ExportOptions{
		Dir:                   dir,
		Scale:                 2,
		UseNameCorrespondence: true,
		RetopoSuffix:          domain.DefaultRetopoSuffix,
		ReferenceSuffix:       domain.DefaultReferenceSuffix,
		Retopo:                true,
		Reference:             true,
		Cage:                  true,
	}
}

func decode(t *testing.T, path string) ([]string, []domain.Geometry) {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // Test file
	require.NoError(t, err)
	names, geoms, err := meshfile.Decode(data, 1)
	require.NoError(t, err)
	return names, geoms
}

func TestExporter_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := export.NewExporter(logger).Export(context.Background(), []domain.ExportItem{
		item("body", domain.StatusClean),
		item("helmet", domain.StatusNeedsInspection),
	}, options(dir))
	require.NoError(t, err)
	require.Len(t, paths, 3)

	names, geoms := decode(t, filepath.Join(dir, domain.RetopoExportFile))
	assert.Equal(t, []string{"body_low", "helmet_low"}, names)
	assert.Equal(t, r3.Vec{X: 2, Y: 4, Z: 6}, geoms[0].Points[0].Position)

	names, _ = decode(t, filepath.Join(dir, domain.ReferenceExportFile))
	assert.Equal(t, []string{"body_high", "helmet_high"}, names)

	names, geoms = decode(t, filepath.Join(dir, domain.CageExportFile))
	assert.Equal(t, []string{"body", "helmet"}, names)
	assert.Equal(t, r3.Vec{X: 22, Y: 4, Z: 6}, geoms[0].Points[0].Position)
	assert.Equal(t, r3.Vec{Z: 1}, geoms[0].Points[0].Normal)
}

func TestExporter_SelectionAndPlainNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	opts := options(dir)
	opts.UseNameCorrespondence = false
	opts.Reference = false
	opts.Cage = false

	paths, err := export.NewExporter(logger).Export(context.Background(), []domain.ExportItem{item("body", domain.StatusClean)}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, domain.RetopoExportFile)}, paths)

	names, _ := decode(t, paths[0])
	assert.Equal(t, []string{"body"}, names)

	_, err = os.Stat(filepath.Join(dir, domain.CageExportFile))
	assert.True(t, os.IsNotExist(err))
}

func TestExporter_InvalidScale(t *testing.T) {
	ctrl := gomock.NewController(t)
	opts := options(t.TempDir())
	opts.Scale = 0

	_, err := export.NewExporter(mocks.NewMockLogger(ctrl)).Export(context.Background(), nil, opts)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidScale.Error())
}
