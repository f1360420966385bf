package preview

import (
	"sync"

	"github.com/ck-zhang/photopick/internal/termcap"
)

// Key identifies one rendered preview. A resize changes the geometry and
// therefore the key, so stale entries are simply never looked up again.
type Key struct {
	Protocol termcap.Protocol
	Path     string
	Width    int
	Height   int
}

// Entry is one rendered preview. Exactly one field is set: Lines for
// block mode, Blob for graphics protocols. Blob bytes go to the terminal
// verbatim.
type Entry struct {
	Lines []string
	Blob  []byte
}

// Cache memoizes renderer output for the lifetime of one session. It is
// unbounded and never evicts; the candidate set and viewport geometry are
// bounded, so so is the cache. Safe for concurrent use by the foreground
// loop and background prefetches.
type Cache struct {
	mu sync.Mutex
	m  map[Key]Entry
}

func NewCache() *Cache {
	return &Cache{m: make(map[Key]Entry)}
}

// GetOrInsert returns the entry stored under key, or runs compute and
// stores its result. A present key never invokes compute. Two goroutines
// computing the same key concurrently is benign: rendering is
// deterministic, so the last write is equivalent to any other. Errors are
// not cached, so a failed render can be retried on a later visit.
func (c *Cache) GetOrInsert(key Key, compute func() (Entry, error)) (Entry, error) {
	c.mu.Lock()
	if e, ok := c.m[key]; ok {
		c.mu.Unlock()
		return e, nil
	}
	c.mu.Unlock()

	e, err := compute()
	if err != nil {
		return Entry{}, err
	}

	c.mu.Lock()
	c.m[key] = e
	c.mu.Unlock()
	return e, nil
}

// Contains reports whether key already has an entry.
func (c *Cache) Contains(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.m[key]
	return ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
