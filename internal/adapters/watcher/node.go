package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wave/internal/adapters/fs"
	"go.trai.ch/wave/internal/adapters/logger"
	"go.trai.ch/wave/internal/core/ports"
)

const (
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// ChangeFilterNodeID is the unique identifier for the change filter Graft node.
	ChangeFilterNodeID graft.ID = "adapter.change_filter"
)

// Factory creates a file watcher.
type Factory func() (ports.Watcher, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				return NewWatcher(log.Error)
			}, nil
		},
	})

	graft.Register(graft.Node[*ChangeFilter]{
		ID:        ChangeFilterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (*ChangeFilter, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewChangeFilter(hasher), nil
		},
	})
}
