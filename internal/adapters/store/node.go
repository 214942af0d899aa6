package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cagesync/internal/core/ports"
)

// NodeID is the unique identifier for the registry store opener Graft node.
const NodeID graft.ID = "adapter.registry_store"

func init() {
	graft.Register(graft.Node[ports.StoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StoreOpener, error) {
			return NewOpener(), nil
		},
	})
}
