// Package cache holds compile results in memory for the lifetime of one
// process, keyed by template content and compiler settings, so a template
// whose content did not change is not recompiled. Nothing is written to disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Cache is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	maxAge     time.Duration
	maxEntries int
	stats      Stats
}

// Entry represents a single cached artifact
type Entry struct {
	Data        []byte
	Created     time.Time
	LastAccess  time.Time
	AccessCount int
}

// Stats counts cache activity since New.
type Stats struct {
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Evictions  int64 `json:"evictions"`
	EntryCount int   `json:"entry_count"`
}

// Config holds cache configuration
type Config struct {
	MaxAge     time.Duration // Entries older than this are misses. Zero disables expiry.
	MaxEntries int           // Least recently used entries beyond this are evicted. Zero means 4096.
}

// New creates an empty cache.
func New(config Config) *Cache {
	if config.MaxEntries <= 0 {
		config.MaxEntries = 4096
	}
	return &Cache{
		entries:    make(map[string]*Entry),
		maxAge:     config.MaxAge,
		maxEntries: config.MaxEntries,
	}
}

// Get retrieves a cached artifact
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if c.maxAge > 0 && time.Since(entry.Created) > c.maxAge {
		c.deleteLocked(key)
		c.stats.Misses++
		return nil, false
	}

	entry.LastAccess = time.Now()
	entry.AccessCount++
	c.stats.Hits++
	return entry.Data, true
}

// Put stores an artifact in the cache. data must not be modified afterwards.
func (c *Cache) Put(key string, data []byte) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Data:       data,
		Created:    now,
		LastAccess: now,
	}
	c.evictLocked()
	c.stats.EntryCount = len(c.entries)
}

// Delete removes an entry from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteLocked(key)
}

// Clear removes all cached entries
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.stats.EntryCount = 0
}

// Stats returns cache statistics
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Key generates a cache key from inputs. Inputs are length-prefixed so that
// ("ab", "c") and ("a", "bc") differ.
func Key(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		fmt.Fprintf(h, "%d:", len(input))
		h.Write([]byte(input))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) deleteLocked(key string) {
	delete(c.entries, key)
	c.stats.EntryCount = len(c.entries)
}

// evictLocked drops least recently used entries until the entry limit holds.
func (c *Cache) evictLocked() {
	for len(c.entries) > c.maxEntries {
		var evictKey string
		var oldest time.Time
		for key, entry := range c.entries {
			if evictKey == "" || entry.LastAccess.Before(oldest) {
				evictKey, oldest = key, entry.LastAccess
			}
		}
		c.deleteLocked(evictKey)
		c.stats.Evictions++
	}
}
