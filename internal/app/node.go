package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/adapters/composer"   //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/repository" //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/store"      //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			store.ManifestNodeID,
			store.LockNodeID,
			store.HasherNodeID,
			repository.NodeID,
			composer.NodeID,
			fs.TreeNodeID,
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
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	repo, err := graft.Dep[ports.PackageRepository](ctx)
	if err != nil {
		return nil, err
	}

	solver, err := graft.Dep[ports.PackageSolver](ctx)
	if err != nil {
		return nil, err
	}

	tree, err := graft.Dep[ports.FileTree](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, manifests, locks, repo, hasher, solver, tree, log), nil
}
