package ports

import (
	"context"

	"go.trai.ch/recipe/internal/core/domain"
)

// PackageSolver defines the interface for the external package solver.
//
//go:generate mockgen -source=solver.go -destination=mocks/mock_solver.go -package=mocks
type PackageSolver interface {
	// Require adds the requirements to the manifest and installs them.
	Require(ctx context.Context, project *domain.Project, requirements []domain.Requirement) error

	// Update resynchronizes the lock snapshot and installed packages with the manifest.
	Update(ctx context.Context, project *domain.Project, opts domain.SolveOptions) error
}
