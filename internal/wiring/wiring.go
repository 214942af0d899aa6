// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cagesync/internal/adapters/config"
	_ "go.trai.ch/cagesync/internal/adapters/export"
	_ "go.trai.ch/cagesync/internal/adapters/fingerprint"
	_ "go.trai.ch/cagesync/internal/adapters/logger"
	_ "go.trai.ch/cagesync/internal/adapters/meshfile"
	_ "go.trai.ch/cagesync/internal/adapters/store"
	_ "go.trai.ch/cagesync/internal/adapters/telemetry"
	_ "go.trai.ch/cagesync/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/cagesync/internal/app"
	_ "go.trai.ch/cagesync/internal/engine/cage"
	_ "go.trai.ch/cagesync/internal/engine/synchronizer"
)
