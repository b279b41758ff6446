// Package query caches backend reads per key and invalidates them after
// successful writes.
package query

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Key names one cached read.
type Key string

// Scoped namespaces a resource key to one user so cached reads never leak
// across sign-ins.
func Scoped(scope, resource string) Key {
	return Key(scope + "/" + resource)
}

// Fetch loads the current value for a key from the backend.
type Fetch func(ctx context.Context) ([]byte, error)

type Cache struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger

	group singleflight.Group

	// mu guards gen and stale, and orders store writes against invalidation.
	mu  sync.Mutex
	gen map[Key]uint64
	// stale holds keys whose store entry could not be deleted. Their store
	// hits are ignored until a fresh fetch is stored.
	stale map[Key]struct{}
}

type Option func(*Cache)

// WithTTL bounds how long an entry is served without refetching. Zero keeps
// entries until they are invalidated.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Cache) { c.log = log }
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		log:   zap.NewNop(),
		gen:   make(map[Key]uint64),
		stale: make(map[Key]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the cached value for key or fetches it. Concurrent reads of
// the same key share one fetch. A fetch that completes after the key was
// invalidated is returned to its callers but not stored. If ctx ends first
// the caller gets ctx.Err() and the fetch still runs to completion.
func (c *Cache) Read(ctx context.Context, key Key, fetch Fetch) ([]byte, error) {
	if !c.isStale(key) {
		if b, ok, err := c.store.Get(ctx, string(key)); err != nil {
			c.log.Warn("cache get failed", zap.String("key", string(key)), zap.Error(err))
		} else if ok {
			return b, nil
		}
	}

	gen := c.generation(key)
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey(key, gen), func() (any, error) {
		b, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		c.storeIfCurrent(detached, key, gen, b)
		return b, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate marks keys stale. The next Read of each key fetches again, even
// when the store fails to drop the old entries.
func (c *Cache) Invalidate(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		c.gen[k]++
		names = append(names, string(k))
	}
	if err := c.store.Delete(ctx, names...); err != nil {
		for _, k := range keys {
			c.stale[k] = struct{}{}
		}
		c.log.Warn("cache delete failed", zap.Strings("keys", names), zap.Error(err))
	}
	return nil
}

// Mutate runs write and, only if it succeeds, invalidates keys. The result
// is the write's error alone.
func (c *Cache) Mutate(ctx context.Context, write func(ctx context.Context) error, keys ...Key) error {
	if err := write(ctx); err != nil {
		return err
	}
	return c.Invalidate(ctx, keys...)
}

func (c *Cache) generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen[key]
}

func (c *Cache) isStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.stale[key]
	return ok
}

func (c *Cache) storeIfCurrent(ctx context.Context, key Key, gen uint64, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[key] != gen {
		c.log.Debug("discarding stale fetch", zap.String("key", string(key)))
		return
	}
	if err := c.store.Set(ctx, string(key), b, c.ttl); err != nil {
		c.log.Warn("cache set failed", zap.String("key", string(key)), zap.Error(err))
		return
	}
	delete(c.stale, key)
}

func flightKey(key Key, gen uint64) string {
	return string(key) + "#" + strconv.FormatUint(gen, 10)
}
