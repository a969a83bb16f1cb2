package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrManifestNotFound is returned when the project manifest does not exist.
	ErrManifestNotFound = zerr.New("could not find manifest")

	// ErrInvalidManifestJSON is returned when the manifest cannot be decoded or encoded.
	ErrInvalidManifestJSON = zerr.New("invalid manifest json")

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestWriteFailed is returned when the manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrInconsistentManifest is returned when a package would be both required and provided.
	ErrInconsistentManifest = zerr.New("package is both required and provided")

	// ErrLockReadFailed is returned when the lock snapshot cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lock file")

	// ErrLockUnmarshalFailed is returned when the lock snapshot cannot be decoded.
	ErrLockUnmarshalFailed = zerr.New("failed to unmarshal lock file")

	// ErrLockWriteFailed is returned when the lock snapshot cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lock file")

	// ErrPackageNotInstalled is returned when a package is absent from the local package set.
	ErrPackageNotInstalled = zerr.New("package is not installed")

	// ErrRecipeNotInstalled is returned when updating a recipe that was never installed.
	ErrRecipeNotInstalled = zerr.New("recipe is not installed, install it with require or require-recipe first")

	// ErrRecipeAlreadyProvided is returned when requiring a recipe that is already inlined.
	ErrRecipeAlreadyProvided = zerr.New("recipe is already added to provide")

	// ErrRecipeVersionUnknown is returned when no installed version can be found for a promoted recipe.
	ErrRecipeVersionUnknown = zerr.New("could not determine installed recipe version")

	// ErrRepositoryReadFailed is returned when the installed package set cannot be read.
	ErrRepositoryReadFailed = zerr.New("failed to read installed packages")

	// ErrRepositoryUnmarshalFailed is returned when the installed package set cannot be decoded.
	ErrRepositoryUnmarshalFailed = zerr.New("failed to unmarshal installed packages")

	// ErrConstraintParse is the sentinel wrapped by ConstraintParseError.
	ErrConstraintParse = zerr.New("could not parse version constraint")

	// ErrUnpackLink is the sentinel wrapped by UnpackLinkError.
	ErrUnpackLink = zerr.New("unable to unpack package")

	// ErrSolverFailure is the sentinel wrapped by SolverError.
	ErrSolverFailure = zerr.New("package solver failed")

	// ErrSolverStartFailed is returned when the solver process cannot be started.
	ErrSolverStartFailed = zerr.New("failed to start package solver")

	// ErrInvalidRequirement is returned when arguments do not describe exactly one requirement.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrNoPackagesSpecified is returned when the unpack command has no packages.
	ErrNoPackagesSpecified = zerr.New("no packages specified")

	// ErrPatchFailed is returned when the format-preserving patcher cannot apply an edit.
	ErrPatchFailed = zerr.New("failed to patch json document")

	// ErrFileCopyFailed is returned when a template file cannot be copied.
	ErrFileCopyFailed = zerr.New("failed to copy file")

	// ErrFileCompareFailed is returned when source and destination cannot be compared.
	ErrFileCompareFailed = zerr.New("failed to compare files")

	// ErrWalkFailed is returned when a recipe source tree cannot be enumerated.
	ErrWalkFailed = zerr.New("failed to walk source tree")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")
)

// ConstraintParseError reports a malformed version constraint expression.
type ConstraintParseError struct {
	Token  string
	Reason string
}

func (e *ConstraintParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("could not parse version constraint %q", e.Token)
	}
	return fmt.Sprintf("could not parse version constraint %q: %s", e.Token, e.Reason)
}

// Unwrap returns ErrConstraintParse.
func (e *ConstraintParseError) Unwrap() error { return ErrConstraintParse }

// UnpackLinkError reports a dependency link that could not be patched into the manifest.
type UnpackLinkError struct {
	Target string
	Err    error
}

func (e *UnpackLinkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to unpack package %q", e.Target)
	}
	return fmt.Sprintf("unable to unpack package %q: %v", e.Target, e.Err)
}

// Unwrap returns ErrUnpackLink.
func (e *UnpackLinkError) Unwrap() error { return ErrUnpackLink }

// SolverError wraps a non-zero exit status returned by the package solver.
type SolverError struct {
	Op     string
	Code   int
	Stderr string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("package solver %s failed with exit status %d", e.Op, e.Code)
}

// Unwrap returns ErrSolverFailure.
func (e *SolverError) Unwrap() error { return ErrSolverFailure }

// ExitCode returns the solver's exit status.
func (e *SolverError) ExitCode() int { return e.Code }

// ExitError signals a distinguished exit status without calling os.Exit in the app layer.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit status carried by the error.
func (e *ExitError) ExitCode() int { return e.Code }

// CommandError reports an external command that exited with a non-zero status.
type CommandError struct {
	Command string
	Code    int
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed with exit status %d", e.Command, e.Code)
}

// Unwrap returns the underlying process error.
func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the command's exit status.
func (e *CommandError) ExitCode() int { return e.Code }

// EditError reports a recorded manifest edit that could not be applied to the document.
type EditError struct {
	Path []string
	Err  error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("failed to apply edit at %q: %v", strings.Join(e.Path, "."), e.Err)
}

// Unwrap returns the patch error.
func (e *EditError) Unwrap() error { return e.Err }
