package composer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/adapters/logger"
	"go.trai.ch/recipe/internal/adapters/shell"
	"go.trai.ch/recipe/internal/core/ports"
)

// NodeID is the unique identifier for the package solver Graft node.
const NodeID graft.ID = "adapter.package_solver"

func init() {
	graft.Register(graft.Node[ports.PackageSolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageSolver, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSolver(executor, log), nil
		},
	})
}
