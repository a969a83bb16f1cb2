package app

import (
	"context"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
)

var _ ports.PackageSolver = (*eventSolver)(nil)

// dispatchFunc receives the packages a solver run installed or updated.
type dispatchFunc func(project *domain.Project, ops []domain.PackageOperation) error

// eventSolver snapshots the lock around every successful solver run and
// dispatches the difference.
type eventSolver struct {
	solver   ports.PackageSolver
	locks    ports.LockStore
	dispatch dispatchFunc
}

func newEventSolver(solver ports.PackageSolver, locks ports.LockStore, dispatch dispatchFunc) *eventSolver {
	return &eventSolver{solver: solver, locks: locks, dispatch: dispatch}
}

func (s *eventSolver) Require(ctx context.Context, project *domain.Project, requirements []domain.Requirement) error {
	return s.observe(project, func() error {
		return s.solver.Require(ctx, project, requirements)
	})
}

func (s *eventSolver) Update(ctx context.Context, project *domain.Project, opts domain.SolveOptions) error {
	return s.observe(project, func() error {
		return s.solver.Update(ctx, project, opts)
	})
}

func (s *eventSolver) observe(project *domain.Project, run func() error) error {
	before, err := s.locks.Load(project.LockPath)
	if err != nil {
		return err
	}

	if err := run(); err != nil {
		return err
	}

	after, err := s.locks.Load(project.LockPath)
	if err != nil {
		return err
	}
	return s.dispatch(project, domain.DiffLocks(before, after))
}
