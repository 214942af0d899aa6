package synchronizer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cagesync/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/cagesync/internal/engine/cage"
)

// NodeID is the unique identifier for the synchronizer Graft node.
const NodeID graft.ID = "engine.synchronizer"

func init() {
	graft.Register(graft.Node[*Synchronizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cage.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Synchronizer, error) {
			generator, err := graft.Dep[ports.CageGenerator](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(generator, tracer), nil
		},
	})
}
