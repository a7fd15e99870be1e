// Package cache memoizes cargo subprocess output on disk.
//
// `cargo bloat` triggers a full build of the inspected package, which can
// take minutes; caching its stdout keyed on the invocation and the lock
// file makes repeated rendering runs cheap. Entries expire after a TTL and
// are invalidated implicitly whenever Cargo.lock changes, since the lock
// file contents participate in the key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// DefaultTTL bounds how long cargo output is reused. The lock file hash
// already catches dependency changes; the TTL catches everything it
// cannot, like source edits that shift crate sizes.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values under string keys with per-entry
// expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Key derives a cache key from the cargo subcommand, its option set, and
// the Cargo.lock contents. Options marshal to JSON so any new field
// automatically participates in the key.
func Key(subcommand string, options any, lockfile []byte) string {
	opts, _ := json.Marshal(options)

	h := sha256.New()
	h.Write(opts)
	h.Write(lockfile)
	return subcommand + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash computes the SHA-256 hex digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
