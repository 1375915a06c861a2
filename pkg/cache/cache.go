// Package cache stores rendered table artifacts keyed by content hash.
//
// Rendering is deterministic for a fixed (csv, config, format) triple, so the
// encoded bytes can be reused verbatim. Layout results are never cached: on a
// miss the whole layout is recomputed from the input.
//
// Three backends are provided:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP service)
//   - [NullCache]: stores nothing (--no-cache, tests)
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the inputs that distinguish one rendered artifact from
// another for the same CSV content.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Config []byte `json:"config"` // canonical JSON of the render config
	Font   string `json:"font,omitempty"`

	// FontDigest identifies the font file's contents, so replacing a file
	// at the same path yields new keys.
	FontDigest string `json:"font_digest,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dataHash, opts)
}
