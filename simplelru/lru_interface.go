// Package simplelru provides a strict LRU implementation backed by an
// index-addressed doubly-linked list.
package simplelru

import "iter"

// LRUCache is the interface for simple LRU cache.
type LRUCache[K comparable, V any] interface {
	// Adds a value to the cache, returns true if an eviction occurred and
	// updates the "recently used"-ness of the key.
	Add(key K, value V) bool

	// Adds a value to the cache and reports which key, if any, was evicted
	// to make room for it.
	Put(key K, value V) (evictedKey K, evicted bool)

	// Returns key's value from the cache and
	// updates the "recently used"-ness of the key. #value, isFound
	Get(key K) (value V, ok bool)

	// Checks if a key exists in cache without updating the recent-ness.
	Contains(key K) (ok bool)

	// Returns key's value without updating the "recently used"-ness of the key.
	Peek(key K) (value V, ok bool)

	// Removes a key from the cache.
	Remove(key K) bool

	// Removes the oldest entry from cache.
	RemoveOldest() (K, V, bool)

	// Returns the oldest entry from the cache. #key, value, isFound
	GetOldest() (K, V, bool)

	// Returns a snapshot of the entries, from newest to oldest.
	Items() []Entry[K, V]

	// Returns a slice of the keys in the cache, from newest to oldest.
	Keys() []K

	// Walks the entries from newest to oldest.
	All() iter.Seq2[K, V]

	// Returns the number of items in the cache.
	Len() int

	// Returns the maximum number of items the cache holds.
	Cap() int

	// Clears all cache entries.
	Purge()

	// Resizes cache, returning number evicted
	Resize(int) (int, error)
}
