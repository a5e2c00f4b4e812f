package graph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wave/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/wave/internal/core/ports"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.graph"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.WalkerNodeID,
			fs.ResolverNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(walker, resolver, log), nil
		},
	})
}
