package server

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTileCache_BasicGetPut(t *testing.T) {
	cache := NewTileCache(100, time.Hour)

	// Miss on empty cache.
	assert.Nil(t, cache.Get(10, 512, 256))

	// Put and get.
	data := []byte("tile-bytes")
	cache.Put(10, 512, 256, data)
	assert.Equal(t, data, cache.Get(10, 512, 256))

	// Different key is still a miss.
	assert.Nil(t, cache.Get(10, 512, 257))
}

func TestTileCache_TTLExpiration(t *testing.T) {
	cache := NewTileCache(100, 50*time.Millisecond)

	cache.Put(1, 0, 0, []byte("tile"))
	assert.NotNil(t, cache.Get(1, 0, 0))

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, cache.Get(1, 0, 0))

	// Expired entry should be removed from the map.
	cache.mu.RLock()
	_, exists := cache.entries[tileKey(1, 0, 0)]
	cache.mu.RUnlock()
	assert.False(t, exists)
}

func TestTileCache_LRUEviction(t *testing.T) {
	cache := NewTileCache(3, time.Hour)

	cache.Put(0, 0, 0, []byte("1"))
	cache.Put(0, 0, 1, []byte("2"))
	cache.Put(0, 0, 2, []byte("3"))

	// Cache is full. Adding a fourth should evict the oldest.
	cache.Put(0, 0, 3, []byte("4"))

	assert.Nil(t, cache.Get(0, 0, 0))
	assert.NotNil(t, cache.Get(0, 0, 1))
	assert.NotNil(t, cache.Get(0, 0, 2))
	assert.NotNil(t, cache.Get(0, 0, 3))
}

func TestTileCache_LRUEviction_AccessOrder(t *testing.T) {
	cache := NewTileCache(3, time.Hour)

	cache.Put(0, 0, 0, []byte("1"))
	cache.Put(0, 0, 1, []byte("2"))
	cache.Put(0, 0, 2, []byte("3"))

	// Access the first entry to move it to the back.
	cache.Get(0, 0, 0)

	// Now (0,0,1) is the oldest and should be evicted.
	cache.Put(0, 0, 3, []byte("4"))

	assert.NotNil(t, cache.Get(0, 0, 0))
	assert.Nil(t, cache.Get(0, 0, 1))
}

func TestTileCache_Stats(t *testing.T) {
	cache := NewTileCache(10, time.Hour)

	cache.Get(5, 1, 1) // miss
	cache.Put(5, 1, 1, []byte("tile"))
	cache.Get(5, 1, 1) // hit

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestTileCache_ConcurrentAccess(t *testing.T) {
	cache := NewTileCache(50, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cache.Put(10, n, n, []byte{byte(n)})
			cache.Get(10, n, n)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Stats().Entries, 50)
}
