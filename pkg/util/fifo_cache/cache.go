// Package fifo_cache is a fixed size map that evicts the oldest inserted
// entry first.
package fifo_cache

import (
	"sync"
)

// FIFOCache is safe for concurrent use. A cache with a non-positive size
// stores nothing.
type FIFOCache[K comparable, V any] struct {
	mu        sync.Mutex
	index     int
	size      int
	insertSeq []K
	cache     map[K]V
}

func New[K comparable, V any](size int) *FIFOCache[K, V] {
	if size < 0 {
		size = 0
	}
	return &FIFOCache[K, V]{
		size:      size,
		insertSeq: make([]K, size),
		cache:     make(map[K]V, size),
	}
}

// Add stores value under key unless key is already present.
func (a *FIFOCache[K, V]) Add(key K, value V) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.size == 0 {
		return
	}
	if _, ok := a.cache[key]; ok {
		return
	}
	if len(a.cache) == a.size {
		delete(a.cache, a.insertSeq[a.index])
	}
	a.insertSeq[a.index] = key
	a.index = (a.index + 1) % a.size
	a.cache[key] = value
}

func (a *FIFOCache[K, V]) Get(key K) (V, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.cache[key]
	return v, ok
}

func (a *FIFOCache[K, V]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.cache)
}

// Cap returns the maximum number of entries.
func (a *FIFOCache[K, V]) Cap() int {
	return a.size
}
