package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wave/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/console"            //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/graph"
	"go.trai.ch/wave/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Recorder ports.Recorder
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			graph.NodeID,
			scheduler.NodeID,
			fs.FileSystemNodeID,
			cas.NodeID,
			watcher.WatcherNodeID,
			watcher.ChangeFilterNodeID,
			console.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*graph.Builder](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	openStore, err := graft.Dep[cas.Opener](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	filter, err := graft.Dep[*watcher.ChangeFilter](ctx)
	if err != nil {
		return nil, err
	}

	cons, err := graft.Dep[ports.Console](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, builder, sched, fsys, openStore, newWatcher, filter, cons, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      app,
		Logger:   log,
		Recorder: recorder,
	}, nil
}
