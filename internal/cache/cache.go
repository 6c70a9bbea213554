package cache

import (
	"log"
	"strings"
	"time"
)

// Store is a key-addressed cache of JSON-serialized payloads with per-entry
// TTL. Entries past expiry are treated as absent on read; nothing sweeps them
// actively. Backends are pluggable: an in-process map or a SQLite database
// behind the same interface.
type Store interface {
	// Get decodes the entry under key into v and reports whether a fresh
	// entry existed.
	Get(key string, v any) (bool, error)
	// Set stores v under key with expiry now+ttl, replacing any previous
	// entry.
	Set(key string, v any, ttl time.Duration) error
	// Reset removes all entries. Safe to call at any time.
	Reset() error
}

const keyPrefix = "tmdb-addon"

// Key builds a cache key of the form "tmdb-addon|kind:part:part:...".
// Absent discriminators must be passed as empty strings so that equivalent
// requests always map to the same key.
func Key(kind string, parts ...string) string {
	return keyPrefix + "|" + kind + ":" + strings.Join(parts, ":")
}

// GetOrCompute returns the cached value under key when present and fresh,
// otherwise invokes compute and stores a successful result with the given TTL.
// A nil store disables caching and behaves as a plain compute call.
//
// There is no single-flight guarantee: concurrent calls with the same key on a
// cold cache may each invoke compute independently. The last write wins, which
// is acceptable because values for a given key are idempotent recomputations
// of the same upstream state.
func GetOrCompute[T any](s Store, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if s == nil {
		return compute()
	}
	var cached T
	ok, err := s.Get(key, &cached)
	if err != nil {
		// Backend trouble is a permanent miss, never fatal.
		log.Printf("[cache] read %s: %v", key, err)
	} else if ok {
		return cached, nil
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	if err := s.Set(key, v, ttl); err != nil {
		log.Printf("[cache] write %s: %v", key, err)
	}
	return v, nil
}
