package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count    int64
	expireAt time.Time
}

// MemoryCounter keeps counts in process memory. Counts are lost on restart
// and are not shared between processes.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	latest  time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{entries: make(map[string]*memoryEntry)}
}

func (c *MemoryCounter) Incr(ctx context.Context, key string, expireAt time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a later expiry means a new window opened; older windows are dead
	if expireAt.After(c.latest) {
		for k, e := range c.entries {
			if e.expireAt.Before(expireAt) {
				delete(c.entries, k)
			}
		}
		c.latest = expireAt
	}

	e, ok := c.entries[key]
	if !ok {
		e = &memoryEntry{expireAt: expireAt}
		c.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// Len returns the number of live keys.
func (c *MemoryCounter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
