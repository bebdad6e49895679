package biome

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"scatterblend/pkg/core"
)

// DefaultCacheSize bounds the classification cache.
const DefaultCacheSize = 1 << 16

// CacheObserver receives cache hit and miss notifications.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// CachedClassifier memoizes an expensive classifier by exact coordinate.
// Scattered points are stable per seed, so neighbouring regions ask for the
// same coordinates repeatedly. Safe for concurrent use.
type CachedClassifier struct {
	classify core.ClassifierE
	cache    *lru.Cache[[2]float64, core.Label]
	observer CacheObserver
}

// NewCachedClassifier wraps classify with an LRU of size entries. observer may be nil.
func NewCachedClassifier(classify core.ClassifierE, size int, observer CacheObserver) (*CachedClassifier, error) {
	if classify == nil {
		return nil, fmt.Errorf("biome: nil classifier")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[[2]float64, core.Label](size)
	if err != nil {
		return nil, fmt.Errorf("biome: classification cache: %w", err)
	}
	return &CachedClassifier{classify: classify, cache: cache, observer: observer}, nil
}

// Classify returns the cached label for (x, z), computing it on a miss.
// Errors are not cached.
func (c *CachedClassifier) Classify(x, z float64) (core.Label, error) {
	key := [2]float64{x, z}
	if l, ok := c.cache.Get(key); ok {
		if c.observer != nil {
			c.observer.CacheHit()
		}
		return l, nil
	}
	if c.observer != nil {
		c.observer.CacheMiss()
	}
	l, err := c.classify(x, z)
	if err != nil {
		return 0, err
	}
	c.cache.Add(key, l)
	return l, nil
}

// ClassifierE returns Classify as a core.ClassifierE.
func (c *CachedClassifier) ClassifierE() core.ClassifierE { return c.Classify }

// Len reports the number of cached coordinates.
func (c *CachedClassifier) Len() int { return c.cache.Len() }

// Purge drops every cached entry.
func (c *CachedClassifier) Purge() { c.cache.Purge() }
