package lru

import (
	"errors"
	"log/slog"

	"github.com/bpowers/strict-lru/simplelru"
)

var (
	// ErrInvalidSize is returned when a cache is created or resized with a
	// non-positive size.
	ErrInvalidSize = simplelru.ErrInvalidSize

	// ErrEmptyKey and ErrEmptyValue are returned by validators that reject
	// missing input.
	ErrEmptyKey   = errors.New("key must not be empty")
	ErrEmptyValue = errors.New("value must not be empty")
)

// Validator checks a key/value pair before Put stores it. A non-nil error
// rejects the call and leaves the cache untouched.
type Validator[K comparable, V any] func(key K, value V) error

// RequireNonZero returns a Validator that rejects the zero key with
// ErrEmptyKey and the zero value with ErrEmptyValue.
func RequireNonZero[K comparable, V comparable]() Validator[K, V] {
	return func(key K, value V) error {
		var zk K
		if key == zk {
			return ErrEmptyKey
		}
		var zv V
		if value == zv {
			return ErrEmptyValue
		}
		return nil
	}
}

// KeyValidator checks a key before Put or Lookup uses it.
type KeyValidator[K comparable] func(key K) error

// RequireNonZeroKey returns a KeyValidator that rejects the zero key with
// ErrEmptyKey.
func RequireNonZeroKey[K comparable]() KeyValidator[K] {
	return func(key K) error {
		var zk K
		if key == zk {
			return ErrEmptyKey
		}
		return nil
	}
}

type config[K comparable, V any] struct {
	onEvict     simplelru.EvictCallback[K, V]
	logger      *slog.Logger
	validate    Validator[K, V]
	validateKey KeyValidator[K]
}

// Option configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

// WithEvictCallback registers a function called for every entry removed to
// respect the size limit. It runs while the cache lock is held and must not
// call back into the cache.
func WithEvictCallback[K comparable, V any](f func(key K, value V)) Option[K, V] {
	return func(c *config[K, V]) { c.onEvict = f }
}

// WithLogger makes the cache log to l instead of the package-level logger.
func WithLogger[K comparable, V any](l *slog.Logger) Option[K, V] {
	return func(c *config[K, V]) { c.logger = l }
}

// WithKeyValidator installs a key check shared by the adding methods and
// Lookup.
func WithKeyValidator[K comparable, V any](v KeyValidator[K]) Option[K, V] {
	return func(c *config[K, V]) { c.validateKey = v }
}

// WithValidator installs a check that Put, Add, ContainsOrAdd and PeekOrAdd
// run before touching the cache.
func WithValidator[K comparable, V any](v Validator[K, V]) Option[K, V] {
	return func(c *config[K, V]) { c.validate = v }
}
