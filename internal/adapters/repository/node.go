package repository

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/core/ports"
)

// NodeID is the unique identifier for the package repository Graft node.
const NodeID graft.ID = "adapter.package_repository"

func init() {
	graft.Register(graft.Node[ports.PackageRepository]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageRepository, error) {
			return NewInstalled(), nil
		},
	})
}
