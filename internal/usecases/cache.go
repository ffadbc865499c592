package usecases

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// QueryCache holds computed aggregates between writes. A value read at
// generation g is stored only while no Flush has happened since g.
type QueryCache interface {
	Get(key string) (interface{}, bool)
	Generation() uint64
	SetAt(gen uint64, key string, value interface{}, d time.Duration) bool
	Flush()
}

const (
	cacheKeyStats     = "stats"
	cacheKeyTopSkills = "skills:top:"
)

// GenerationCache is a go-cache store with a flush counter.
type GenerationCache struct {
	mu    sync.Mutex
	gen   uint64
	items *gocache.Cache
}

// NewGenerationCache creates a cache whose entries expire after ttl.
func NewGenerationCache(ttl, cleanupInterval time.Duration) *GenerationCache {
	return &GenerationCache{items: gocache.New(ttl, cleanupInterval)}
}

func (c *GenerationCache) Get(key string) (interface{}, bool) {
	return c.items.Get(key)
}

// Generation returns the number of flushes so far.
func (c *GenerationCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// SetAt stores value unless the cache was flushed after gen was taken.
func (c *GenerationCache) SetAt(gen uint64, key string, value interface{}, d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.items.Set(key, value, d)
	return true
}

func (c *GenerationCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items.Flush()
}
