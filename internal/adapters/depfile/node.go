package depfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wave/internal/adapters/fs"
	"go.trai.ch/wave/internal/core/ports"
)

// NodeID is the unique identifier for the dependency file reader Graft node.
const NodeID graft.ID = "adapter.depfile"

func init() {
	graft.Register(graft.Node[ports.DependencyReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID},
		Run: func(ctx context.Context) (ports.DependencyReader, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(fsys)
		},
	})
}
