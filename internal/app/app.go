// Package app implements the application layer for recipe.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/recipe/internal/engine/inliner"
	"go.trai.ch/recipe/internal/engine/materializer"
	"go.trai.ch/recipe/internal/engine/normalizer"
	"go.trai.ch/recipe/internal/engine/unpacker"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	manifests    ports.ManifestStore
	locks        ports.LockStore
	repo         ports.PackageRepository
	logger       ports.Logger

	inliner      *inliner.Inliner
	unpacker     *unpacker.Unpacker
	materializer *materializer.Materializer
}

// New creates a new App instance. Every solver run made on behalf of the App
// dispatches package events to the file materializer.
func New(
	loader ports.ConfigLoader,
	manifests ports.ManifestStore,
	locks ports.LockStore,
	repo ports.PackageRepository,
	hasher ports.Hasher,
	solver ports.PackageSolver,
	tree ports.FileTree,
	log ports.Logger,
) *App {
	a := &App{
		configLoader: loader,
		manifests:    manifests,
		locks:        locks,
		repo:         repo,
		logger:       log,
		materializer: materializer.New(tree, log),
	}

	events := newEventSolver(solver, locks, a.dispatch)
	a.inliner = inliner.New(manifests, locks, repo, events, log)
	a.unpacker = unpacker.New(manifests, locks, hasher, events, log)
	return a
}

// RecipeOptions names the recipe for RequireRecipe and UpdateRecipe.
type RecipeOptions struct {
	// Recipe may be a full package name or an alias.
	Recipe string
	// Constraint is optional.
	Constraint string
}

// RequireRecipe installs a recipe and inlines its dependencies.
func (a *App) RequireRecipe(ctx context.Context, dir string, opts RecipeOptions) error {
	project, err := a.load(dir)
	if err != nil {
		return err
	}

	req, err := a.resolveRecipe(project, opts)
	if err != nil {
		return err
	}

	manifest, err := a.manifests.Load(project.ManifestPath)
	if err != nil {
		return err
	}
	if _, ok := manifest.Provide[req.Name]; ok {
		return &domain.ExitError{
			Code: domain.ExitAlreadyProvided,
			Err:  zerr.With(domain.ErrRecipeAlreadyProvided, "recipe", req.Name),
		}
	}

	installed, err := a.inliner.FindInstalledVersion(project, req.Name)
	if err != nil {
		return err
	}

	return a.inliner.InstallRecipe(ctx, project, inliner.Request{
		Recipe:           req.Name,
		Constraint:       req.Constraint,
		InstalledVersion: installed,
	})
}

// UpdateRecipe updates a recipe that is already installed, inline or required.
func (a *App) UpdateRecipe(ctx context.Context, dir string, opts RecipeOptions) error {
	project, err := a.load(dir)
	if err != nil {
		return err
	}

	req, err := a.resolveRecipe(project, opts)
	if err != nil {
		return err
	}

	installed, err := a.inliner.FindInstalledVersion(project, req.Name)
	if err != nil {
		return err
	}
	if installed == "" {
		return zerr.With(domain.ErrRecipeNotInstalled, "recipe", req.Name)
	}

	return a.inliner.InstallRecipe(ctx, project, inliner.Request{
		Recipe:           req.Name,
		Constraint:       req.Constraint,
		InstalledVersion: installed,
	})
}

// Unpack flattens the named installed recipes into the manifest.
func (a *App) Unpack(ctx context.Context, dir string, packages []string) error {
	if len(packages) == 0 {
		return domain.ErrNoPackagesSpecified
	}

	project, err := a.load(dir)
	if err != nil {
		return err
	}

	reqs, err := normalizer.New(project.Config.Aliases).ResolveRequirements(packages)
	if err != nil {
		return err
	}

	lock, err := a.locks.Load(project.LockPath)
	if err != nil {
		return err
	}

	targets := make([]unpacker.Target, 0, len(reqs))
	for _, req := range reqs {
		pkg, err := a.repo.FindPackage(project, req.Name)
		if err != nil {
			return err
		}
		if pkg == nil {
			return &domain.ExitError{Code: 1, Err: a.notInstalled(project, req.Name)}
		}
		targets = append(targets, unpacker.Target{
			Name:    req.Name,
			Package: pkg,
			Dev:     lock.IsDev(req.Name),
		})
	}

	result, err := a.unpacker.Unpack(ctx, project, targets)
	if err != nil {
		return err
	}
	if len(result.Unpacked) > 0 {
		a.logger.Info(fmt.Sprintf("Unpacked %s, still requiring %s",
			strings.Join(result.UnpackedNames(), ", "),
			strings.Join(result.RequiredNames(project.Config.Sentinel), ", ")))
	}
	return nil
}

// InstallFiles materializes the files of the named recipes, or of every
// installed recipe when none is named.
func (a *App) InstallFiles(_ context.Context, dir string, recipes []string) error {
	project, err := a.load(dir)
	if err != nil {
		return err
	}

	var packages []*domain.Package
	if len(recipes) == 0 {
		packages, err = a.repo.Packages(project)
		if err != nil {
			return err
		}
	} else {
		names, err := normalizer.New(project.Config.Aliases).Resolve(recipes)
		if err != nil {
			return err
		}
		for _, name := range names {
			pkg, err := a.repo.FindPackage(project, name)
			if err != nil {
				return err
			}
			if pkg == nil {
				return a.notInstalled(project, name)
			}
			packages = append(packages, pkg)
		}
	}

	events := make([]domain.PackageEvent, 0, len(packages))
	for _, pkg := range packages {
		events = append(events, domain.PackageEvent{Kind: domain.EventInstall, Package: pkg})
	}
	return a.materialize(project, events)
}

// CleanupProject drops the file patterns a project inherited from the recipe
// it was created from.
func (a *App) CleanupProject(_ context.Context, dir string) error {
	project, err := a.load(dir)
	if err != nil {
		return err
	}

	manifest, err := a.manifests.Load(project.ManifestPath)
	if err != nil {
		return err
	}

	for _, key := range []string{domain.ExtraProjectFiles, domain.ExtraPublicFiles} {
		if manifest.RemoveExtra(key) {
			a.logger.Info(fmt.Sprintf("Removed extra.%s", key))
		}
	}
	manifest.RemoveEmptyExtra()

	return a.manifests.Save(manifest)
}

func (a *App) load(dir string) (*domain.Project, error) {
	project, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

func (a *App) resolveRecipe(project *domain.Project, opts RecipeOptions) (domain.Requirement, error) {
	args := []string{opts.Recipe}
	if opts.Constraint != "" {
		args = append(args, opts.Constraint)
	}

	reqs, err := normalizer.New(project.Config.Aliases).ResolveRequirements(args)
	if err != nil {
		return domain.Requirement{}, err
	}
	if len(reqs) != 1 {
		return domain.Requirement{}, zerr.With(domain.ErrInvalidRequirement, "recipe", opts.Recipe)
	}
	return reqs[0], nil
}

// dispatch turns lock changes into package events and materializes the
// files of every recipe among them.
func (a *App) dispatch(project *domain.Project, ops []domain.PackageOperation) error {
	var events []domain.PackageEvent
	for _, op := range ops {
		pkg, err := a.repo.FindPackage(project, op.Name)
		if err != nil {
			return err
		}
		if !pkg.IsRecipe(project.Config.RecipeType) {
			continue
		}
		events = append(events, domain.PackageEvent{Kind: op.Kind, Package: pkg})
	}
	return a.materialize(project, events)
}

func (a *App) materialize(project *domain.Project, events []domain.PackageEvent) error {
	if len(events) == 0 {
		return nil
	}

	manifest, err := a.manifests.Load(project.ManifestPath)
	if err != nil {
		return err
	}
	for _, event := range events {
		if err := a.materializer.InstallPackage(project, manifest, event.Package); err != nil {
			return zerr.With(err, "package", event.Package.Name)
		}
	}
	return a.manifests.Save(manifest)
}
