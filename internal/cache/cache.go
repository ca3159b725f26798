// Package cache stores rendered report payloads so repeated report
// requests over the same workbook are pure reads. Caching is an
// optimization only: results are identical with it disabled, because
// every cached value is keyed by a digest of the full input.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the storage interface for rendered report payloads
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from the given parts, typically the input
// workbook digest plus the report parameters
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "disclo:v1:" + hex.EncodeToString(hash[:])
}

// FileDigest hashes raw file contents for use as a key part
func FileDigest(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
