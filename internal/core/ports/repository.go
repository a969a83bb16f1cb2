package ports

import "go.trai.ch/recipe/internal/core/domain"

// PackageRepository defines the interface for querying locally installed packages.
//
//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type PackageRepository interface {
	// FindPackage returns the installed package with the given name.
	// Returns nil, nil if not found.
	FindPackage(project *domain.Project, name string) (*domain.Package, error)

	// Packages returns every installed package in index order.
	Packages(project *domain.Project) ([]*domain.Package, error)
}
