package cage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cagesync/internal/core/ports"
)

// NodeID is the unique identifier for the cage generator Graft node.
const NodeID graft.ID = "engine.cage_generator"

func init() {
	graft.Register(graft.Node[ports.CageGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CageGenerator, error) {
			return NewGenerator(), nil
		},
	})
}
