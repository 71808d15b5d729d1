package simplelru

import (
	"errors"
	"iter"
)

// ErrInvalidSize is returned when a cache is created or resized with a
// non-positive size.
var ErrInvalidSize = errors.New("must provide a positive size")

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[K comparable, V any] func(key K, value V)

// Entry is a key/value pair as reported by Items.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// LRU implements a non-thread safe fixed size LRU cache
type LRU[K comparable, V any] struct {
	size    int
	items   map[K]handle
	order   *recencyList[K, V]
	onEvict EvictCallback[K, V]
}

var _ LRUCache[string, int] = (*LRU[string, int])(nil)

// NewLRU constructs an LRU of the given size
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	c := &LRU[K, V]{
		size:    size,
		items:   make(map[K]handle, min(size, maxReserve)),
		order:   newRecencyList[K, V](size),
		onEvict: onEvict,
	}
	return c, nil
}

// Purge is used to completely clear the cache. The eviction callback is
// not invoked.
func (c *LRU[K, V]) Purge() {
	clear(c.items)
	c.order.reset()
}

// Add adds a value to the cache.  Returns true if an eviction occurred.
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	_, evicted = c.Put(key, value)
	return evicted
}

// Put adds a value to the cache, or replaces the value of an existing key.
// Either way the key becomes the most recently used. If the key is new and
// the cache is full, the least recently used entry is evicted first and
// its key is returned.
func (c *LRU[K, V]) Put(key K, value V) (evictedKey K, evicted bool) {
	// Check for existing item
	if h, ok := c.items[key]; ok {
		c.order.at(h).value = value
		c.order.moveToFront(h)
		return evictedKey, false
	}

	if len(c.items) >= c.size {
		evictedKey, _ = c.removeOldest()
		evicted = true
	}

	c.items[key] = c.order.pushFront(key, value)
	return evictedKey, evicted
}

// Get looks up a key's value from the cache.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	if h, ok := c.items[key]; ok {
		c.order.moveToFront(h)
		return c.order.at(h).value, true
	}
	return value, false
}

// Contains checks if a key is in the cache, without updating the recent-ness
// or deleting it for being stale.
func (c *LRU[K, V]) Contains(key K) (ok bool) {
	_, ok = c.items[key]
	return ok
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	if h, ok := c.items[key]; ok {
		return c.order.at(h).value, true
	}
	return value, false
}

// Remove removes the provided key from the cache, returning if the
// key was contained. The eviction callback is not invoked.
func (c *LRU[K, V]) Remove(key K) (present bool) {
	if h, ok := c.items[key]; ok {
		delete(c.items, key)
		c.order.remove(h)
		return true
	}
	return false
}

// RemoveOldest removes the oldest item from the cache.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	if c.order.len == 0 {
		return key, value, false
	}
	key, value = c.removeOldest()
	return key, value, true
}

// GetOldest returns the oldest entry
func (c *LRU[K, V]) GetOldest() (key K, value V, ok bool) {
	if c.order.len == 0 {
		return key, value, false
	}
	n := c.order.at(c.order.back())
	return n.key, n.value, true
}

// Items returns a copy of the cache contents, most recently used first.
func (c *LRU[K, V]) Items() []Entry[K, V] {
	out := make([]Entry[K, V], 0, c.order.len)
	for h := c.order.front(); h != root; {
		n := c.order.at(h)
		out = append(out, Entry[K, V]{Key: n.key, Value: n.value})
		h = n.next
	}
	return out
}

// Keys returns a slice of the keys in the cache, most recently used first.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.len)
	for h := c.order.front(); h != root; {
		n := c.order.at(h)
		keys = append(keys, n.key)
		h = n.next
	}
	return keys
}

// All returns an iterator over the cache contents, most recently used
// first. The cache must not be modified while the iteration is running.
func (c *LRU[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := c.order.front(); h != root; {
			n := c.order.at(h)
			if !yield(n.key, n.value) {
				return
			}
			h = n.next
		}
	}
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the maximum number of items in the cache.
func (c *LRU[K, V]) Cap() int {
	return c.size
}

// Resize changes the cache size. Shrinking below the current length evicts
// the least recently used entries straight away.
func (c *LRU[K, V]) Resize(size int) (evicted int, err error) {
	if size <= 0 {
		return 0, ErrInvalidSize
	}
	for len(c.items) > size {
		c.removeOldest()
		evicted++
	}
	c.order.reserve(size)
	c.size = size
	return evicted, nil
}

// removeOldest evicts the entry at the back of the recency list. The
// caller must make sure the cache is not empty.
func (c *LRU[K, V]) removeOldest() (K, V) {
	h := c.order.back()
	n := *c.order.at(h)
	delete(c.items, n.key)
	c.order.remove(h)
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
	return n.key, n.value
}
