package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cagesync/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cagesync/internal/adapters/export"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cagesync/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cagesync/internal/adapters/meshfile"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cagesync/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/cagesync/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/cagesync/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/cagesync/internal/engine/synchronizer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			meshfile.NodeID,
			store.NodeID,
			synchronizer.NodeID,
			export.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	importer, err := graft.Dep[ports.MeshImporter](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.StoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	sync, err := graft.Dep[*synchronizer.Synchronizer](ctx)
	if err != nil {
		return nil, err
	}

	exporter, err := graft.Dep[ports.Exporter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, importer, stores, sync, exporter, log, tracer, watchers), nil
}
