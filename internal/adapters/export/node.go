package export

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cagesync/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cagesync/internal/core/ports"
)

// NodeID is the unique identifier for the exporter Graft node.
const NodeID graft.ID = "adapter.exporter"

func init() {
	graft.Register(graft.Node[ports.Exporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Exporter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExporter(log), nil
		},
	})
}
