// Package composer drives the composer binary as the package solver.
package composer

import (
	"context"
	"errors"
	"maps"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	opRequire = "require"
	opUpdate  = "update"
	opInstall = "install"
)

var _ ports.PackageSolver = (*Solver)(nil)

// Solver implements ports.PackageSolver on top of an Executor.
type Solver struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewSolver creates a new Solver.
func NewSolver(executor ports.Executor, logger ports.Logger) *Solver {
	return &Solver{executor: executor, logger: logger}
}

// Require runs `require` for the given requirements.
func (s *Solver) Require(ctx context.Context, project *domain.Project, requirements []domain.Requirement) error {
	args := []string{opRequire, "--no-interaction"}
	for _, req := range requirements {
		args = append(args, req.String())
	}
	return s.run(ctx, project, opRequire, args)
}

// Update runs `update`, or `install` when opts.FromLock is set.
func (s *Solver) Update(ctx context.Context, project *domain.Project, opts domain.SolveOptions) error {
	op := opUpdate
	if opts.FromLock {
		op = opInstall
	}

	args := []string{op, "--no-interaction"}
	if !opts.DevMode {
		args = append(args, "--no-dev")
	}
	if opts.SkipAutoloader {
		args = append(args, "--no-autoloader")
	}
	if opts.SkipScripts {
		args = append(args, "--no-scripts")
	}
	if opts.SkipSuggestions {
		args = append(args, "--no-suggest")
	}
	if opts.IgnorePlatformReqs {
		args = append(args, "--ignore-platform-reqs")
	}
	if !opts.FromLock {
		args = append(args, opts.Packages...)
	}

	return s.run(ctx, project, op, args)
}

func (s *Solver) run(ctx context.Context, project *domain.Project, op string, args []string) error {
	if len(project.Config.SolverCommand) == 0 {
		return zerr.With(domain.ErrSolverStartFailed, "reason", "no solver command configured")
	}
	cmd := domain.Command{
		Dir:  project.Root,
		Args: append(append([]string(nil), project.Config.SolverCommand...), args...),
		Env:  solverEnv(project),
	}

	s.logger.Info("Running " + cmd.String())

	err := s.executor.Execute(ctx, cmd)
	if err == nil {
		return nil
	}

	var cmdErr *domain.CommandError
	if errors.As(err, &cmdErr) {
		return &domain.SolverError{Op: op, Code: cmdErr.ExitCode(), Stderr: cmdErr.Stderr}
	}
	return zerr.With(zerr.Wrap(err, domain.ErrSolverStartFailed.Error()), "command", cmd.String())
}

// solverEnv copies the configured environment and points COMPOSER at a
// manifest that does not use the default file name.
func solverEnv(project *domain.Project) map[string]string {
	env := maps.Clone(project.Config.SolverEnv)
	if env == nil {
		env = map[string]string{}
	}
	if project.ManifestPath != "" && filepath.Base(project.ManifestPath) != domain.ManifestFileName {
		env[domain.ManifestEnvVar] = project.ManifestPath
	}
	return env
}
