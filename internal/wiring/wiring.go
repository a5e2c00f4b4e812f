// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wave/internal/adapters/cas"
	_ "go.trai.ch/wave/internal/adapters/config"
	_ "go.trai.ch/wave/internal/adapters/console"
	_ "go.trai.ch/wave/internal/adapters/depfile"
	_ "go.trai.ch/wave/internal/adapters/fs"
	_ "go.trai.ch/wave/internal/adapters/logger"
	_ "go.trai.ch/wave/internal/adapters/macro"
	_ "go.trai.ch/wave/internal/adapters/shell"
	_ "go.trai.ch/wave/internal/adapters/telemetry"
	_ "go.trai.ch/wave/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/wave/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/wave/internal/app"
	_ "go.trai.ch/wave/internal/engine/graph"
	_ "go.trai.ch/wave/internal/engine/scheduler"
)
