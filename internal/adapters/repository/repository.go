// Package repository reads the solver's index of locally installed packages.
package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageRepository = (*Installed)(nil)

// Installed implements ports.PackageRepository on vendor/composer/installed.json.
// The index is re-read on every call since the solver rewrites it between steps.
type Installed struct{}

// NewInstalled creates a new Installed repository.
func NewInstalled() *Installed {
	return &Installed{}
}

type installedEntry struct {
	domain.Package
	InstallPath string `json:"install-path"`
}

// FindPackage returns the installed package with the given name, or nil if it is absent.
func (r *Installed) FindPackage(project *domain.Project, name string) (*domain.Package, error) {
	pkgs, err := r.Packages(project)
	if err != nil {
		return nil, err
	}
	for _, pkg := range pkgs {
		if pkg.Name == name {
			return pkg, nil
		}
	}
	return nil, nil
}

// Packages returns every installed package in index order.
func (r *Installed) Packages(project *domain.Project) ([]*domain.Package, error) {
	path := domain.InstalledIndexPath(project.VendorDir)
	data, err := os.ReadFile(path) //nolint:gosec // path is resolved from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryReadFailed.Error()), "path", path)
	}

	entries, err := decodeIndex(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryUnmarshalFailed.Error()), "path", path)
	}

	metadataDir := filepath.Dir(path)
	pkgs := make([]*domain.Package, 0, len(entries))
	for i := range entries {
		entry := entries[i]
		pkg := entry.Package
		switch {
		case entry.InstallPath == "":
			pkg.InstallPath = filepath.Join(project.VendorDir, filepath.FromSlash(pkg.Name))
		case filepath.IsAbs(entry.InstallPath):
			pkg.InstallPath = filepath.Clean(entry.InstallPath)
		default:
			pkg.InstallPath = filepath.Join(metadataDir, filepath.FromSlash(entry.InstallPath))
		}
		pkgs = append(pkgs, &pkg)
	}
	return pkgs, nil
}

// decodeIndex accepts the object form {"packages": [...]} and the older bare list form.
func decodeIndex(data []byte) ([]installedEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []installedEntry
		err := json.Unmarshal(trimmed, &entries)
		return entries, err
	}

	var doc struct {
		Packages []installedEntry `json:"packages"`
	}
	err := json.Unmarshal(trimmed, &doc)
	return doc.Packages, err
}
