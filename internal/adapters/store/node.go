package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest store Graft node.
	ManifestNodeID graft.ID = "adapter.manifest_store"
	// LockNodeID is the unique identifier for the lock store Graft node.
	LockNodeID graft.ID = "adapter.lock_store"
	// HasherNodeID is the unique identifier for the content hasher Graft node.
	HasherNodeID graft.ID = "adapter.content_hasher"
)

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestStore, error) {
			return NewManifestStore(), nil
		},
	})

	graft.Register(graft.Node[ports.LockStore]{
		ID:        LockNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockStore, error) {
			return NewLockStore(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewContentHasher(), nil
		},
	})
}
