package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"
)

// Entry stores one cached provider response.
type Entry struct {
	Timestamp time.Time
	Response  map[string]any
}

// Cache is a content-addressed map from request fingerprint to the last
// successful response. Entries live for the process lifetime; there is no
// eviction. TODO: bound growth with an LRU or TTL policy, or move entries
// to an external store such as Redis.
type Cache struct {
	mutex   sync.RWMutex
	entries map[string]Entry
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]Entry),
	}
}

// Fingerprint derives a deterministic cache key from the request content.
// Metadata keys are sorted so logically identical requests always map to
// the same key regardless of map iteration order.
func Fingerprint(modelType string, data []byte, metadata map[string]string) string {
	hasher := sha256.New()
	hasher.Write([]byte(modelType))
	hasher.Write([]byte{0})
	hasher.Write(data)

	if len(metadata) > 0 {
		keys := make([]string, 0, len(metadata))
		for k := range metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			hasher.Write([]byte{0})
			hasher.Write([]byte(k))
			hasher.Write([]byte{0})
			hasher.Write([]byte(metadata[k]))
		}
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// Get returns the cached response for a fingerprint, if present.
func (c *Cache) Get(key string) (map[string]any, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.Response, true
}

// Put stores a successful response. Concurrent writes to the same key are
// last-writer-wins.
func (c *Cache) Put(key string, response map[string]any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = Entry{
		Timestamp: time.Now(),
		Response:  response,
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
