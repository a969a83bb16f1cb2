// Package config resolves the project layout and the optional recipe.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// VendorDirEnvVar overrides the vendor directory, matching the solver's own behavior.
const VendorDirEnvVar = "COMPOSER_VENDOR_DIR"

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	// Getenv is used to read environment overrides.
	Getenv func(string) string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Getenv: os.Getenv}
}

// Load resolves the project rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "cwd", cwd)
	}

	recipefile, err := readRecipefile(filepath.Join(root, domain.ConfigFileName))
	if err != nil {
		return nil, err
	}

	cfg, err := l.buildConfig(recipefile)
	if err != nil {
		return nil, err
	}

	manifestName := domain.ManifestFileName
	if name := l.getenv(domain.ManifestEnvVar); name != "" {
		manifestName = name
	}
	manifestPath := resolvePath(root, manifestName)

	vendorDir := domain.DefaultVendorDir
	if recipefile.VendorDir != "" {
		vendorDir = recipefile.VendorDir
	}
	if dir := l.getenv(VendorDirEnvVar); dir != "" {
		vendorDir = dir
	}

	publicDir := domain.DefaultPublicDir
	if recipefile.PublicDir != "" {
		publicDir = recipefile.PublicDir
	}

	return &domain.Project{
		Root:         root,
		ManifestPath: manifestPath,
		LockPath:     domain.LockPathFor(manifestPath),
		VendorDir:    resolvePath(root, vendorDir),
		PublicDir:    publicDir,
		Config:       cfg,
	}, nil
}

func (l *Loader) getenv(key string) string {
	if l.Getenv == nil {
		return os.Getenv(key)
	}
	return l.Getenv(key)
}

func (l *Loader) buildConfig(rf *Recipefile) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if rf.RecipeType != "" {
		cfg.RecipeType = rf.RecipeType
	}
	if rf.RuntimePackage != "" {
		cfg.RuntimePackage = rf.RuntimePackage
	}
	if rf.Sentinel != "" {
		cfg.Sentinel = rf.Sentinel
	}
	if len(rf.Solver.Command) > 0 {
		cfg.SolverCommand = rf.Solver.Command
	}
	for k, v := range rf.Solver.Env {
		cfg.SolverEnv[k] = v
	}

	for alias, target := range rf.Aliases {
		if !strings.Contains(target, "/") {
			err := zerr.With(domain.ErrConfigParseFailed, "alias", alias)
			return domain.Config{}, zerr.With(err, "reason", "alias target must be a vendor/name package")
		}
		if current, ok := cfg.Aliases[alias]; ok && current != target {
			l.Logger.Warn(fmt.Sprintf("alias %q in %s overrides %s", alias, domain.ConfigFileName, current))
		}
		cfg.Aliases[alias] = target
	}

	return cfg, nil
}

// readRecipefile decodes path strictly. A missing file yields an empty Recipefile.
func readRecipefile(path string) (*Recipefile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Recipefile{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var rf Recipefile
	if len(bytes.TrimSpace(data)) == 0 {
		return &rf, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return &rf, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
