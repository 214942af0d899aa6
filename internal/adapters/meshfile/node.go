package meshfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cagesync/internal/adapters/fingerprint" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cagesync/internal/core/ports"
)

// NodeID is the unique identifier for the mesh importer Graft node.
const NodeID graft.ID = "adapter.mesh_importer"

func init() {
	graft.Register(graft.Node[ports.MeshImporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fingerprint.NodeID},
		Run: func(ctx context.Context) (ports.MeshImporter, error) {
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			return NewImporter(fingerprinter), nil
		},
	})
}
