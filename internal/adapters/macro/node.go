package macro

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wave/internal/core/ports"
)

// NodeID is the unique identifier for the macro resolver Graft node.
const NodeID graft.ID = "adapter.macro"

func init() {
	graft.Register(graft.Node[ports.MacroResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MacroResolver, error) {
			return NewResolver(), nil
		},
	})
}
