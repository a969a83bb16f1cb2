package ports

import (
	"context"

	"go.trai.ch/recipe/internal/core/domain"
)

// Executor defines the interface for running external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and waits for it to complete.
	// Output is forwarded to the logger line by line.
	// A non-zero exit status is returned as *domain.CommandError.
	Execute(ctx context.Context, cmd domain.Command) error
}
