// Package unpacker flattens installed recipes into the root manifest and
// removes the recipes from the manifest and the lock snapshot.
package unpacker

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
)

// Target is one package to unpack.
type Target struct {
	// Name is used when Package is nil.
	Name    string
	Package *domain.Package

	// Dev is set when the target is itself a dev requirement. Its links are
	// then written to require-dev.
	Dev bool
}

// Unpacker reverses a recipe install.
type Unpacker struct {
	manifests ports.ManifestStore
	locks     ports.LockStore
	hasher    ports.Hasher
	solver    ports.PackageSolver
	logger    ports.Logger
}

// New creates an Unpacker.
func New(
	manifests ports.ManifestStore,
	locks ports.LockStore,
	hasher ports.Hasher,
	solver ports.PackageSolver,
	logger ports.Logger,
) *Unpacker {
	return &Unpacker{
		manifests: manifests,
		locks:     locks,
		hasher:    hasher,
		solver:    solver,
		logger:    logger,
	}
}

// Unpack writes the links of every recipe target into the manifest, then drops
// the recipes from manifest and lock and lets the solver remove them from disk.
// Targets that are not recipes, or recipes without requirements, pass through.
func (u *Unpacker) Unpack(ctx context.Context, project *domain.Project, targets []Target) (Result, error) {
	var result Result

	manifest, err := u.manifests.Load(project.ManifestPath)
	if err != nil {
		return result, err
	}

	for _, target := range targets {
		pkg := target.Package
		if !unpackable(pkg, project.Config.RecipeType) {
			result.Required = append(result.Required, passThrough(target))
			continue
		}

		result.Unpacked = append(result.Unpacked, pkg)
		for _, link := range pkg.Requires {
			if link.Target == project.Config.RuntimePackage {
				continue
			}
			manifest.SetRequire(link.Target, link.Constraint, target.Dev)
		}
	}

	if err := manifest.Validate(); err != nil {
		return result, err
	}
	if err := u.saveLinks(manifest); err != nil {
		return result, err
	}

	if len(result.Unpacked) == 0 {
		u.logger.Info("Nothing to unpack")
		return result, nil
	}

	for _, pkg := range result.Unpacked {
		u.logger.Info(fmt.Sprintf("Unpacked %s dependencies", pkg.Name))
	}

	lock, err := u.locks.Load(project.LockPath)
	if err != nil {
		return result, err
	}
	for _, pkg := range result.Unpacked {
		manifest.RemoveRequire(pkg.Name)
		lock.Remove(pkg.Name)
	}

	if err := manifest.Validate(); err != nil {
		return result, err
	}
	if err := u.manifests.Save(manifest); err != nil {
		return result, err
	}

	if lock.Exists() {
		hash, err := u.hasher.ContentHash(manifest.Raw)
		if err != nil {
			return result, err
		}
		lock.ContentHash = hash
		if err := u.locks.Save(lock); err != nil {
			return result, err
		}
	}

	err = u.solver.Update(ctx, project, domain.SolveOptions{
		FromLock:           true,
		DevMode:            true,
		SkipAutoloader:     true,
		SkipScripts:        true,
		SkipSuggestions:    true,
		IgnorePlatformReqs: true,
	})
	return result, err
}

func (u *Unpacker) saveLinks(manifest *domain.Manifest) error {
	err := u.manifests.Save(manifest)
	var editErr *domain.EditError
	if errors.As(err, &editErr) && len(editErr.Path) > 0 {
		return &domain.UnpackLinkError{Target: editErr.Path[len(editErr.Path)-1], Err: editErr.Err}
	}
	return err
}

func unpackable(pkg *domain.Package, recipeType string) bool {
	return pkg.IsRecipe(recipeType) && !pkg.IsMarker()
}

func passThrough(target Target) string {
	if target.Package == nil {
		return target.Name
	}
	if target.Package.Version == "" {
		return target.Package.Name
	}
	return target.Package.Name + ":" + target.Package.Version
}
