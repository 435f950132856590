package cache

import (
	"context"
	"math"
	"sync"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

// Coordinates are rounded to this many decimals (about 1.1 m) when keying.
const keyDecimals = 5

// MemoDistanceCache is an in-memory origin->destination distance cache.
// It is meant to live for a single planning request and is never shared.
type MemoDistanceCache struct {
	mu      sync.Mutex
	entries map[memoKey]ports.DistanceResult
	hits    int
}

type memoKey struct {
	fromLat, fromLon, toLat, toLon int64
}

func NewMemoDistanceCache() *MemoDistanceCache {
	return &MemoDistanceCache{entries: make(map[memoKey]ports.DistanceResult)}
}

func round(v float64) int64 {
	return int64(math.Round(v * math.Pow10(keyDecimals)))
}

func keyOf(from, to domain.Coordinates) memoKey {
	return memoKey{round(from.Lat), round(from.Lon), round(to.Lat), round(to.Lon)}
}

// Get returns the cached result for the pair.
func (c *MemoDistanceCache) Get(from, to domain.Coordinates) (ports.DistanceResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.entries[keyOf(from, to)]
	if ok {
		c.hits++
	}
	return r, ok
}

// Put stores a result for the pair.
func (c *MemoDistanceCache) Put(from, to domain.Coordinates, r ports.DistanceResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyOf(from, to)] = r
}

// Hits reports how many lookups were answered from memory.
func (c *MemoDistanceCache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// MemoDistanceProvider answers repeated point-to-point lookups from a
// MemoDistanceCache. Failed lookups are not remembered.
type MemoDistanceProvider struct {
	next  ports.DistanceProvider
	cache *MemoDistanceCache
}

func NewMemoDistanceProvider(next ports.DistanceProvider, cache *MemoDistanceCache) *MemoDistanceProvider {
	if cache == nil {
		cache = NewMemoDistanceCache()
	}
	return &MemoDistanceProvider{next: next, cache: cache}
}

// Hits reports how many lookups were answered from memory.
func (m *MemoDistanceProvider) Hits() int {
	return m.cache.Hits()
}

func (m *MemoDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	if r, ok := m.cache.Get(origin, destination); ok {
		return r, nil
	}

	r, err := m.next.GetDistance(ctx, origin, destination)
	if err != nil {
		return ports.DistanceResult{}, err
	}

	m.cache.Put(origin, destination, r)
	return r, nil
}
