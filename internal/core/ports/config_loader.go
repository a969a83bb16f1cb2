package ports

import "go.trai.ch/recipe/internal/core/domain"

// ConfigLoader defines the interface for resolving the project layout and configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the project rooted at the given working directory.
	Load(cwd string) (*domain.Project, error)
}
