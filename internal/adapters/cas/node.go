package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wave/internal/core/ports"
)

// NodeID is the unique identifier for the build info store opener Graft node.
const NodeID graft.ID = "adapter.build_info_store"

// Opener opens the build info store of a build root.
type Opener func(buildRoot string) (ports.BuildInfoStore, error)

func init() {
	graft.Register(graft.Node[Opener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Opener, error) {
			return func(buildRoot string) (ports.BuildInfoStore, error) {
				return Open(buildRoot)
			}, nil
		},
	})
}
