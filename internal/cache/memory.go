package cache

import (
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore keeps serialized entries in an in-process map. It is the default
// backend when no cache database is configured.
type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns an in-process Store. defaultTTL applies when Set is
// called with a non-positive TTL.
func NewMemoryStore(defaultTTL time.Duration) Store {
	return &memoryStore{c: gocache.New(defaultTTL, 10*time.Minute)}
}

func (m *memoryStore) Get(key string, v any) (bool, error) {
	raw, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}
	buf, ok := raw.([]byte)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memoryStore) Set(key string, v any, ttl time.Duration) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, buf, ttl)
	return nil
}

func (m *memoryStore) Reset() error {
	m.c.Flush()
	return nil
}
