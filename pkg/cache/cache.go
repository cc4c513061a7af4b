// Package cache provides the byte-level caches behind the layout and render
// pipeline.
//
// A [Cache] stores opaque values with an optional TTL. Three backends are
// available:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys are produced by a [Keyer] so that every component derives the same key
// for the same topology, selection and output options.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Default TTLs. Layouts and artifacts are pure functions of their keys, so
// entries only expire to bound disk and memory usage.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// DefaultDir returns the directory used by the CLI's file cache:
// $XDG_CACHE_HOME/fattree, or the platform cache directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "fattree"), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fattree"), nil
}
