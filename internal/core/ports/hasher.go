package ports

// Hasher defines the interface for computing the lock snapshot's content hash.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ContentHash computes the hash of the relevant manifest keys.
	ContentHash(manifestRaw []byte) (string, error)
}
