// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/recipe/internal/adapters/composer"
	_ "go.trai.ch/recipe/internal/adapters/config"
	_ "go.trai.ch/recipe/internal/adapters/fs"
	_ "go.trai.ch/recipe/internal/adapters/logger"
	_ "go.trai.ch/recipe/internal/adapters/repository"
	_ "go.trai.ch/recipe/internal/adapters/shell"
	_ "go.trai.ch/recipe/internal/adapters/store"
	// Register app nodes.
	_ "go.trai.ch/recipe/internal/app"
)
