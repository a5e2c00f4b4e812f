package ports

// Hasher fingerprints recipes and files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable hash of the given recipe lines.
	Fingerprint(recipes []string) string
	// ComputeFileHash returns the content hash of a file.
	ComputeFileHash(path string) (uint64, error)
}
