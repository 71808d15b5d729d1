// Package lru provides a thread-safe, fixed size, strict LRU cache.
package lru

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bpowers/strict-lru/simplelru"
)

// Cache is a thread-safe fixed size LRU cache.
type Cache[K comparable, V any] struct {
	lru         simplelru.LRUCache[K, V]
	lock        sync.RWMutex
	validate    Validator[K, V]
	validateKey KeyValidator[K]
	logger      *slog.Logger

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates an LRU of the given size.
func New[K comparable, V any](size int, opts ...Option[K, V]) (*Cache[K, V], error) {
	var cfg config[K, V]
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[K, V]{
		validate:    cfg.validate,
		validateKey: cfg.validateKey,
		logger:      cfg.logger,
	}
	onEvict := cfg.onEvict
	lru, err := simplelru.NewLRU[K, V](size, func(key K, value V) {
		c.evictions.Add(1)
		c.log().Debug("lru: evicted", slog.Any("key", key))
		if onEvict != nil {
			onEvict(key, value)
		}
	})
	if err != nil {
		return nil, err
	}
	c.lru = lru
	return c, nil
}

// NewWithEvict constructs a fixed size cache with the given eviction
// callback.
func NewWithEvict[K comparable, V any](size int, onEvicted func(key K, value V)) (*Cache[K, V], error) {
	return New[K, V](size, WithEvictCallback(onEvicted))
}

func (c *Cache[K, V]) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// Purge is used to completely clear the cache.
func (c *Cache[K, V]) Purge() {
	c.lock.Lock()
	n := c.lru.Len()
	c.lru.Purge()
	c.lock.Unlock()
	c.log().Debug("lru: purged", slog.Int("entries", n))
}

// check runs the configured validators. It must be called before the lock
// is taken.
func (c *Cache[K, V]) check(op string, key K, value V) error {
	if c.validateKey != nil {
		if err := c.validateKey(key); err != nil {
			return fmt.Errorf("lru: %s: %w", op, err)
		}
	}
	if c.validate != nil {
		if err := c.validate(key, value); err != nil {
			return fmt.Errorf("lru: %s: %w", op, err)
		}
	}
	return nil
}

// Put adds a value to the cache, or replaces the value of an existing key.
// If a new key pushed the cache over its size, the evicted key is returned
// with evicted set. A validator error rejects the call before any change.
func (c *Cache[K, V]) Put(key K, value V) (evictedKey K, evicted bool, err error) {
	if err = c.check("put", key, value); err != nil {
		return evictedKey, false, err
	}
	c.lock.Lock()
	evictedKey, evicted = c.lru.Put(key, value)
	c.lock.Unlock()
	return evictedKey, evicted, nil
}

// Add adds a value to the cache. Returns true if an eviction occurred.
func (c *Cache[K, V]) Add(key K, value V) (evicted bool, err error) {
	_, evicted, err = c.Put(key, value)
	return evicted, err
}

// ContainsOrAdd checks if a key is in the cache without updating the
// recent-ness, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) ContainsOrAdd(key K, value V) (ok, evicted bool, err error) {
	if err = c.check("put", key, value); err != nil {
		return false, false, err
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.lru.Contains(key) {
		return true, false, nil
	}
	_, evicted = c.lru.Put(key, value)
	return false, evicted, nil
}

// PeekOrAdd checks if a key is in the cache without updating the
// recent-ness, and if not, adds the value.
// Returns the stored value, whether found and whether an eviction occurred.
func (c *Cache[K, V]) PeekOrAdd(key K, value V) (previous V, ok, evicted bool, err error) {
	if err = c.check("put", key, value); err != nil {
		return previous, false, false, err
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	previous, ok = c.lru.Peek(key)
	if ok {
		return previous, true, false, nil
	}
	_, evicted = c.lru.Put(key, value)
	return previous, false, evicted, nil
}

// Lookup is Get preceded by the key validator. A rejected key is reported
// as an error rather than a miss, and is not counted in Stats.
func (c *Cache[K, V]) Lookup(key K) (value V, ok bool, err error) {
	if c.validateKey != nil {
		if err = c.validateKey(key); err != nil {
			return value, false, fmt.Errorf("lru: get: %w", err)
		}
	}
	value, ok = c.Get(key)
	return value, ok, nil
}

// Get looks up a key's value from the cache. Keys are not validated; use
// Lookup for that.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	c.lock.Lock()
	value, ok = c.lru.Get(key)
	c.lock.Unlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return value, ok
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *Cache[K, V]) Contains(key K) bool {
	c.lock.RLock()
	containKey := c.lru.Contains(key)
	c.lock.RUnlock()
	return containKey
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.lock.RLock()
	value, ok = c.lru.Peek(key)
	c.lock.RUnlock()
	return value, ok
}

// Remove removes the provided key from the cache.
func (c *Cache[K, V]) Remove(key K) (present bool) {
	c.lock.Lock()
	present = c.lru.Remove(key)
	c.lock.Unlock()
	return
}

// Resize changes the cache size. Shrinking evicts the least recently used
// entries right away.
func (c *Cache[K, V]) Resize(size int) (evicted int, err error) {
	c.lock.Lock()
	old := c.lru.Cap()
	evicted, err = c.lru.Resize(size)
	c.lock.Unlock()
	if err != nil {
		return 0, fmt.Errorf("lru: resize to %d: %w", size, err)
	}
	c.log().Info("lru: resized",
		slog.Int("from", old), slog.Int("to", size), slog.Int("evicted", evicted))
	return evicted, nil
}

// Items returns a snapshot of the cache contents, most recently used first.
func (c *Cache[K, V]) Items() []simplelru.Entry[K, V] {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.lru.Items()
}

// Keys returns the keys in the cache, most recently used first.
func (c *Cache[K, V]) Keys() []K {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.lru.Keys()
}

// All returns an iterator over a snapshot taken when iteration starts, so
// the loop body may use the cache freely.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range c.Items() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	length := c.lru.Len()
	c.lock.RUnlock()
	return length
}

// Cap returns the maximum number of items in the cache.
func (c *Cache[K, V]) Cap() int {
	c.lock.RLock()
	size := c.lru.Cap()
	c.lock.RUnlock()
	return size
}
