package meshfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/adapters/meshfile"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/spatial/r3"
)

const collection = `
version: "1"
objects:
  - name: body
    points:
      - {p: [1, 2, 3], n: [0, 0, 1]}
      - {p: [4, 5, 6]}
  - name: helmet
    points:
      - {p: [0, 1, 0], n: [0, 1, 0]}
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meshes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestImporter_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	fp := mocks.NewMockFingerprinter(ctrl)
	fp.EXPECT().Fingerprint(gomock.Any()).DoAndReturn(func(g domain.Geometry) domain.Fingerprint {
		return domain.Fingerprint{PointCount: uint64(g.Len()), OrderHash: 7}
	}).Times(2)

	meshes, err := meshfile.NewImporter(fp).Import(context.Background(), writeFile(t, collection), 2)
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	body := meshes[0]
	assert.Equal(t, "body", body.Name)
	assert.Equal(t, domain.Fingerprint{PointCount: 2, OrderHash: 7}, body.Fingerprint)
	assert.Equal(t, r3.Vec{X: 2, Y: 4, Z: 6}, body.Geometry.Points[0].Position)
	assert.Equal(t, r3.Vec{Z: 1}, body.Geometry.Points[0].Normal, "normals are not scaled")
	assert.Equal(t, r3.Vec{}, body.Geometry.Points[1].Normal)

	assert.Equal(t, "helmet", meshes[1].Name)
}

func TestImporter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "malformed yaml",
			content: "objects: [",
			want:    domain.ErrSnapshotParseFailed,
		},
		{
			name:    "short vector",
			content: "objects:\n  - name: body\n    points:\n      - {p: [1, 2]}\n",
			want:    domain.ErrInvalidVector,
		},
		{
			name:    "missing position",
			content: "objects:\n  - name: body\n    points:\n      - {n: [0, 0, 1]}\n",
			want:    domain.ErrInvalidVector,
		},
		{
			name:    "NaN normal",
			content: "objects:\n  - name: helmet\n    points:\n      - {p: [0, 0, 0], n: [.nan, 0, 0]}\n",
			want:    domain.ErrInvalidVector,
		},
		{
			name:    "infinite position",
			content: "objects:\n  - name: helmet\n    points:\n      - {p: [-.inf, 0, 0]}\n",
			want:    domain.ErrInvalidVector,
		},
		{
			name:    "unnamed object",
			content: "objects:\n  - points: []\n",
			want:    domain.ErrSnapshotParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fp := mocks.NewMockFingerprinter(ctrl)

			_, err := meshfile.NewImporter(fp).Import(context.Background(), writeFile(t, tt.content), 1)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func TestImporter_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := meshfile.NewImporter(mocks.NewMockFingerprinter(ctrl))

	_, err := importer.Import(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), 1)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSnapshotReadFailed.Error())
}

func TestImporter_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := meshfile.NewImporter(mocks.NewMockFingerprinter(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := importer.Import(ctx, writeFile(t, collection), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncode_TransformsPositions(t *testing.T) {
	g := domain.NewGeometry([]domain.Point{
		{Position: r3.Vec{X: 1, Y: 1, Z: 1}, Normal: r3.Vec{Y: 1}},
	})
	obj := meshfile.NewObject("body_low", g, r3.Vec{X: 1}, 10)

	data, err := meshfile.Encode([]meshfile.ObjectDTO{obj})
	require.NoError(t, err)

	names, geoms, err := meshfile.Decode(data, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"body_low"}, names)
	assert.Equal(t, r3.Vec{X: 20, Y: 10, Z: 10}, geoms[0].Points[0].Position)
	assert.Equal(t, r3.Vec{Y: 1}, geoms[0].Points[0].Normal)
}
