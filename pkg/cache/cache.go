// Package cache stores workspace discovery results between runs.
//
// Crawling a large workspace and parsing every manifest is the slow
// part of each invocation, so parsed descriptors are cached keyed by
// the workspace root. Backends: a file cache under the XDG cache dir
// (the default), a Redis cache for shared use across machines, and a
// null cache that disables caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultTTL bounds how long discovery results stay fresh. Manifest
// edits within the window require --refresh to be picked up.
const DefaultTTL = 5 * time.Minute

// Cache is the backend interface for discovery results.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with the given time-to-live. A zero ttl means
	// no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Key builds a namespaced cache key: prefix plus the SHA-256 of the
// parts joined together.
func Key(prefix string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
