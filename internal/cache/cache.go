// ABOUTME: In-memory cache with TTL-based expiration for panel list data
// ABOUTME: Purged whenever the session changes so one admin never sees another's lists

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	data      any
	expiresAt time.Time
}

type Cache struct {
	store  sync.Map
	ttl    time.Duration
	logger zerolog.Logger
	stop   chan struct{}
	once   sync.Once
	group  singleflight.Group
}

// New creates a cache and starts its cleanup loop. Call Stop when done.
func New(ttl time.Duration, logger zerolog.Logger) *Cache {
	c := &Cache{
		ttl:    ttl,
		logger: logger,
		stop:   make(chan struct{}),
	}
	go c.startCleanup(time.Minute)
	return c
}

func (c *Cache) Get(key string) (any, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		c.logger.Debug().Str("key", key).Msg("cache miss")
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		c.logger.Debug().Str("key", key).Msg("cache expired")
		return nil, false
	}

	c.logger.Debug().Str("key", key).Msg("cache hit")
	return e.data, true
}

func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.store.Store(key, entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	})
	c.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("cache set")
}

func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}

// Purge drops everything
func (c *Cache) Purge() {
	c.store.Range(func(key, _ any) bool {
		c.store.Delete(key)
		return true
	})
	c.logger.Debug().Msg("cache purged")
}

// Stop ends the cleanup loop. Safe to call more than once.
func (c *Cache) Stop() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.store.Range(func(key, val any) bool {
				if now.After(val.(entry).expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}

// Fetch returns the cached value for key or loads and stores it.
// Concurrent misses for one key share a single load. Load errors are not cached.
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	if typed, ok := lookup[T](c, key); ok {
		return typed, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if typed, ok := lookup[T](c, key); ok {
			return typed, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if shared {
		c.logger.Debug().Str("key", key).Msg("cache load shared")
	}
	if err != nil {
		var zero T
		return zero, err
	}
	typed, _ := v.(T)
	return typed, nil
}

func lookup[T any](c *Cache, key string) (T, bool) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}
