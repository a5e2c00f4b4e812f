package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wave/internal/adapters/console"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/depfile"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/macro"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/telemetry"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/rule"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			console.NodeID,
			depfile.NodeID,
			macro.NodeID,
			fs.FileSystemNodeID,
			fs.HasherNodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			launcher, err := graft.Dep[ports.Launcher](ctx)
			if err != nil {
				return nil, err
			}

			cons, err := graft.Dep[ports.Console](ctx)
			if err != nil {
				return nil, err
			}

			deps, err := graft.Dep[ports.DependencyReader](ctx)
			if err != nil {
				return nil, err
			}

			macros, err := graft.Dep[ports.MacroResolver](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Recorder](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(
				launcher,
				cons,
				rule.NewChecker(fsys, deps, log),
				macros,
				fsys,
				hasher,
				tracer,
				recorder,
				log,
			), nil
		},
	})
}
