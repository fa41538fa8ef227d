// Package objectstore decouples uploaded binary assets from their storage
// location: a path codec maps backing-store object keys to externally
// routable paths, and a Client issues scoped presigned write grants and
// serves reads by key.
package objectstore

import (
	"errors"
	"strings"
)

// PathPrefix is the fixed prefix of every externally routable object path.
const PathPrefix = "/objects/"

// ErrInvalidPath marks an external path that cannot be decoded to a storage key.
var ErrInvalidPath = errors.New("invalid object path")

// ExternalPath maps a storage key to its externally routable path.
// The mapping is a collision-free bijection over the keys this package
// generates: the prefix is fixed and the key is carried verbatim.
func ExternalPath(key string) string {
	return PathPrefix + key
}

// NormalizePath re-prefixes a path that is missing the expected prefix.
// Normalization is idempotent: an already-prefixed path passes through
// unchanged, so a retried call never double-prefixes.
func NormalizePath(path string) string {
	if strings.HasPrefix(path, PathPrefix) {
		return path
	}
	return PathPrefix + strings.TrimPrefix(path, "/")
}

// StorageKey decodes an external path back to the storage key it carries.
// Paths that decode to an empty key or that try to climb out of the key
// space fail with ErrInvalidPath.
func StorageKey(path string) (string, error) {
	key := strings.TrimPrefix(NormalizePath(path), PathPrefix)
	if key == "" {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	return key, nil
}
