// Package rescache memoizes loaded resources (textures, font faces) by key.
//
// The first GetOrCreate for a key runs its create function and stores the
// result; every later call for the same key returns the stored value.
// Creation is atomic per key: concurrent callers for one key wait for a single
// create, callers for different keys do not block each other.
package rescache

import "sync"

// Cache is safe for concurrent use. It must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	limit     int
	keepError bool
	tick      int64
}

type entry[V any] struct {
	once  sync.Once
	value V
	err   error
	atime int64
	done  bool
}

type Option func(*options)

type options struct {
	limit     int
	keepError bool
}

// WithLimit bounds the cache to n entries, evicting the least recently used
// completed entry when exceeded. Zero means unbounded, the default.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithoutErrorMemo makes failed creates forgettable: the next call for the
// key runs create again. By default failures are stored like values.
func WithoutErrorMemo() Option {
	return func(o *options) { o.keepError = false }
}

func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	o := options{keepError: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		limit:     o.limit,
		keepError: o.keepError,
	}
}

// GetOrCreate returns the stored value for key, calling create once if the
// key has not been seen.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[V]{}
		c.entries[key] = e
	}
	c.tick++
	e.atime = c.tick
	c.mu.Unlock()

	e.once.Do(func() {
		e.value, e.err = create()
		c.mu.Lock()
		e.done = true
		if e.err != nil && !c.keepError && c.entries[key] == e {
			delete(c.entries, key)
		}
		c.evict()
		c.mu.Unlock()
	})
	return e.value, e.err
}

// Get returns the stored value without creating one. Keys whose create is
// still running or failed report false.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.done || e.err != nil {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Range calls fn for every completed, successful entry. fn must not call
// back into the cache.
func (c *Cache[K, V]) Range(fn func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.done && e.err == nil {
			fn(k, e.value)
		}
	}
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[V])
	c.tick = 0
}

// evict removes least recently used completed entries until under the
// limit. Called with mu held.
func (c *Cache[K, V]) evict() {
	if c.limit <= 0 {
		return
	}
	for len(c.entries) > c.limit {
		var (
			oldestKey K
			oldest    *entry[V]
		)
		for k, e := range c.entries {
			if !e.done {
				continue
			}
			if oldest == nil || e.atime < oldest.atime {
				oldestKey, oldest = k, e
			}
		}
		if oldest == nil {
			return
		}
		delete(c.entries, oldestKey)
	}
}
