package detection

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 64

// Cache memoises Compute results keyed on the complete parameter set, evicting
// the least recently used entry when full. Results are copied on the way in
// and out so cached sample slices are never shared with callers. Failed
// computations are not stored.
type Cache struct {
	entries *lru.Cache[CalculationParameters, DetectionResult]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache creates a cache holding at most limit results. A non-positive
// limit selects the default size.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = defaultCacheSize
	}
	entries, err := lru.New[CalculationParameters, DetectionResult](limit)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Cache{entries: entries}
}

// Compute returns the cached result for params, computing it on a miss.
func (c *Cache) Compute(params CalculationParameters) (DetectionResult, error) {
	if err := params.Validate(); err != nil {
		return DetectionResult{}, err
	}

	if res, ok := c.entries.Get(params); ok {
		c.hits.Add(1)
		return copyResult(res), nil
	}

	res, err := Compute(params)
	if err != nil {
		return DetectionResult{}, err
	}
	c.misses.Add(1)
	c.entries.ContainsOrAdd(params, copyResult(res))
	return res, nil
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func copyResult(r DetectionResult) DetectionResult {
	out := r
	out.Samples = make([]AmplitudeSample, len(r.Samples))
	copy(out.Samples, r.Samples)
	return out
}
