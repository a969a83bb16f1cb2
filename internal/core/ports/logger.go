// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	// Forward logs one line of output from a child process.
	Forward(line string)
	Warn(msg string)
	Error(err error)
}
