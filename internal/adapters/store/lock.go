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

var _ ports.LockStore = (*LockStore)(nil)

// LockStore implements ports.LockStore on the local filesystem.
type LockStore struct{}

// NewLockStore creates a new LockStore.
func NewLockStore() *LockStore {
	return &LockStore{}
}

type lockDocument struct {
	Packages    []domain.LockedPackage `json:"packages"`
	PackagesDev []domain.LockedPackage `json:"packages-dev"`
	ContentHash string                 `json:"content-hash"`
}

// Load reads the lock snapshot at path. A missing file yields an empty snapshot.
func (s *LockStore) Load(path string) (*domain.LockSnapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is resolved from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.LockSnapshot{Path: path}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "path", path)
	}

	var doc lockDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockUnmarshalFailed.Error()), "path", path)
	}

	return &domain.LockSnapshot{
		Path:        path,
		Raw:         data,
		Packages:    doc.Packages,
		PackagesDev: doc.PackagesDev,
		ContentHash: doc.ContentHash,
	}, nil
}

// Save writes packages, packages-dev and content-hash back into the lock file.
// A snapshot that was never read from disk is not written.
func (s *LockStore) Save(lock *domain.LockSnapshot) error {
	if !lock.Exists() {
		return nil
	}

	doc, err := jsonedit.Parse(lock.Raw)
	if err != nil {
		return zerr.With(err, "path", lock.Path)
	}

	edits := []struct {
		key   string
		value any
	}{
		{domain.LockKeyPackages, nonNilPackages(lock.Packages)},
		{domain.LockKeyPackagesDev, nonNilPackages(lock.PackagesDev)},
		{domain.LockKeyContentHash, lock.ContentHash},
	}
	for _, edit := range edits {
		if err := doc.Set([]string{edit.key}, edit.value); err != nil {
			return zerr.With(err, "path", lock.Path)
		}
	}

	data := doc.Bytes()
	if err := writeFile(lock.Path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", lock.Path)
	}
	lock.Raw = data
	return nil
}

func nonNilPackages(pkgs []domain.LockedPackage) []domain.LockedPackage {
	if pkgs == nil {
		return []domain.LockedPackage{}
	}
	return pkgs
}
