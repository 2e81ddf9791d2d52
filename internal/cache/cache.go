package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching search responses and article bodies
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a stable cache key from an arbitrary lookup string
// (search query, article URL).
func Key(s string) string {
	hash := sha256.Sum256([]byte(s))
	return "claimlens:v1:" + hex.EncodeToString(hash[:])
}

// Nop is a cache that stores nothing; used when caching is disabled.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)                 { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error   { return nil }
func (Nop) Delete(string) error                       { return nil }
func (Nop) Clear() error                              { return nil }
