package ports

import "go.trai.ch/recipe/internal/core/domain"

// ManifestStore defines the interface for reading and writing the project manifest.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Load reads and decodes the manifest at path.
	Load(path string) (*domain.Manifest, error)

	// Save replays the manifest's pending edits onto its raw document and writes it.
	// It is a no-op when nothing changed.
	Save(manifest *domain.Manifest) error
}

// LockStore defines the interface for reading and writing the lock snapshot.
type LockStore interface {
	// Load reads the lock snapshot at path.
	// A missing file yields an empty snapshot.
	Load(path string) (*domain.LockSnapshot, error)

	// Save writes packages, packages-dev and content-hash back, keeping every other key.
	Save(lock *domain.LockSnapshot) error
}
