// Package inliner merges a recipe's dependencies into the root manifest and
// promotes the recipe itself to a provided package.
package inliner

import (
	"context"
	"fmt"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request names the recipe to inline.
type Request struct {
	Recipe string

	// Constraint is optional. When empty and InstalledVersion is set, a
	// constraint is guessed from the installed version.
	Constraint string

	// InstalledVersion is set when updating a recipe that is already installed.
	InstalledVersion string
}

// Inliner reconciles a recipe into the project manifest.
type Inliner struct {
	manifests ports.ManifestStore
	locks     ports.LockStore
	repo      ports.PackageRepository
	solver    ports.PackageSolver
	logger    ports.Logger
}

// New creates an Inliner.
func New(
	manifests ports.ManifestStore,
	locks ports.LockStore,
	repo ports.PackageRepository,
	solver ports.PackageSolver,
	logger ports.Logger,
) *Inliner {
	return &Inliner{
		manifests: manifests,
		locks:     locks,
		repo:      repo,
		solver:    solver,
		logger:    logger,
	}
}

// InstallRecipe requires the recipe through the solver, inlines its direct
// dependencies, moves it from require to provide and resynchronizes the lock.
// Solver errors are returned unchanged.
func (i *Inliner) InstallRecipe(ctx context.Context, project *domain.Project, req Request) error {
	constraint := i.announce(req)

	if err := i.solver.Require(ctx, project, []domain.Requirement{{Name: req.Recipe, Constraint: constraint}}); err != nil {
		return err
	}

	manifest, err := i.manifests.Load(project.ManifestPath)
	if err != nil {
		return err
	}

	pkg, err := i.repo.FindPackage(project, req.Recipe)
	if err != nil {
		return err
	}
	if pkg == nil {
		return zerr.With(domain.ErrPackageNotInstalled, "package", req.Recipe)
	}

	plan := Merge(manifest.Require, manifest.DependencyLedger(), pkg.Requires, project.Config.RuntimePackage)
	i.apply(manifest, req.Recipe, plan)

	if err := manifest.SetDependencyLedger(plan.Ledger); err != nil {
		return err
	}

	version, err := i.resolvedVersion(project, pkg, req)
	if err != nil {
		return err
	}
	manifest.RemoveRequire(req.Recipe)
	manifest.SetProvide(req.Recipe, version)

	if err := manifest.Validate(); err != nil {
		return err
	}
	if err := i.manifests.Save(manifest); err != nil {
		return err
	}

	return i.solver.Update(ctx, project, domain.SolveOptions{DevMode: true})
}

// FindInstalledVersion returns the locked version of recipe, else its provide
// constraint, else its require constraint. It returns "" when none is found.
func (i *Inliner) FindInstalledVersion(project *domain.Project, recipe string) (string, error) {
	lock, err := i.locks.Load(project.LockPath)
	if err != nil {
		return "", err
	}
	if locked, ok := lock.Find(recipe); ok {
		return locked.Version, nil
	}

	manifest, err := i.manifests.Load(project.ManifestPath)
	if err != nil {
		return "", err
	}
	if provided, ok := manifest.Provide[recipe]; ok {
		return provided, nil
	}
	if required, ok := manifest.Require[recipe]; ok {
		return required, nil
	}
	return "", nil
}

// announce logs what is about to be installed and returns the constraint to use.
func (i *Inliner) announce(req Request) string {
	constraint := req.Constraint

	if req.InstalledVersion != "" {
		if constraint == "" {
			i.logger.Info(fmt.Sprintf("Updating existing recipe from %s", req.InstalledVersion))
			constraint = domain.BestConstraint(req.InstalledVersion)
			if constraint != "" {
				i.logger.Info(fmt.Sprintf("Auto-detected constraint %s", constraint))
			} else {
				i.logger.Info("Could not detect a constraint, the latest version will be installed")
			}
		} else {
			i.logger.Info(fmt.Sprintf("Updating existing recipe from %s to %s", req.InstalledVersion, constraint))
		}
		return constraint
	}

	if constraint == "" {
		i.logger.Info(fmt.Sprintf("Installing latest version of %s", req.Recipe))
	}
	return constraint
}

func (i *Inliner) apply(manifest *domain.Manifest, recipe string, plan Plan) {
	if len(plan.Decisions) == 0 {
		return
	}

	i.logger.Info(fmt.Sprintf("Inlining all dependencies for recipe %s:", recipe))
	for _, d := range plan.Decisions {
		switch d.Outcome {
		case OutcomeUnchanged:
			i.logger.Info(fmt.Sprintf(" * Inlining %s (unchanged)", d.Name))
		case OutcomeUpdated:
			i.logger.Info(fmt.Sprintf(" * Inlining %s (updated from %s to %s)", d.Name, d.Previous, d.Constraint))
			manifest.SetRequire(d.Name, d.Constraint, false)
		case OutcomeNew:
			i.logger.Info(fmt.Sprintf(" * Inlining %s (new)", d.Name))
			manifest.SetRequire(d.Name, d.Constraint, false)
		case OutcomeRemoved:
			i.logger.Info(fmt.Sprintf(" * Skipping %s (manually removed, not reinstalled)", d.Name))
		}
	}
}

// resolvedVersion prefers what the solver locked over the repository and the
// caller's installed version.
func (i *Inliner) resolvedVersion(project *domain.Project, pkg *domain.Package, req Request) (string, error) {
	lock, err := i.locks.Load(project.LockPath)
	if err != nil {
		return "", err
	}
	if locked, ok := lock.Find(req.Recipe); ok && locked.Version != "" {
		return locked.Version, nil
	}
	if pkg.Version != "" {
		return pkg.Version, nil
	}
	if req.InstalledVersion != "" {
		return req.InstalledVersion, nil
	}
	return "", zerr.With(domain.ErrRecipeVersionUnknown, "package", req.Recipe)
}
