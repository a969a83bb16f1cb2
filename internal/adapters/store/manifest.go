// Package store reads and writes the project manifest and lock snapshot.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/recipe/internal/adapters/jsonedit"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*ManifestStore)(nil)

// ManifestStore implements ports.ManifestStore on the local filesystem.
type ManifestStore struct{}

// NewManifestStore creates a new ManifestStore.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{}
}

// Load reads and decodes the manifest at path.
func (s *ManifestStore) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is resolved from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	return domain.ParseManifest(path, data)
}

// Save replays the pending edits onto the raw document and writes it back.
func (s *ManifestStore) Save(manifest *domain.Manifest) error {
	if !manifest.Changed() {
		return nil
	}

	doc, err := jsonedit.Parse(manifest.Raw)
	if err != nil {
		return zerr.With(err, "path", manifest.Path)
	}

	for _, edit := range manifest.Edits() {
		switch edit.Op {
		case domain.EditSet:
			err = doc.Set(edit.Path, edit.Value)
		case domain.EditRemove:
			err = doc.Remove(edit.Path)
		}
		if err != nil {
			return &domain.EditError{Path: edit.Path, Err: zerr.With(err, "path", manifest.Path)}
		}
	}

	data := doc.Bytes()
	if !json.Valid(data) {
		return zerr.With(domain.ErrInvalidManifestJSON, "path", manifest.Path)
	}

	if err := writeFile(manifest.Path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", manifest.Path)
	}

	manifest.Commit(data)
	return nil
}

// writeFile writes data keeping the existing file mode.
func writeFile(path string, data []byte) error {
	perm := os.FileMode(domain.FilePerm)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, data, perm)
}
