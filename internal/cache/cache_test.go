// ABOUTME: Tests for the TTL cache
// ABOUTME: Covers expiry, purge and the Fetch helper

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c := New(ttl, zerolog.Nop())
	t.Cleanup(c.Stop)
	return c
}

func TestCache_SetAndGet(t *testing.T) {
	c := newTestCache(t, time.Second)

	c.Set("events", "value1")

	val, found := c.Get("events")
	if !found {
		t.Error("expected to find events")
	}
	if val != "value1" {
		t.Errorf("expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := newTestCache(t, 100*time.Millisecond)

	c.Set("events", "value1")
	if _, found := c.Get("events"); !found {
		t.Error("expected to find events immediately")
	}

	time.Sleep(150 * time.Millisecond)

	if _, found := c.Get("events"); found {
		t.Error("expected events to be expired")
	}
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t, time.Second)
	c.Set("panel:/stalls", 1)
	c.Set("summary", 2)

	c.Clear("panel:/stalls")

	if _, found := c.Get("panel:/stalls"); found {
		t.Error("expected panel:/stalls cleared")
	}
	if _, found := c.Get("summary"); !found {
		t.Error("expected summary kept")
	}
}

func TestCache_Purge(t *testing.T) {
	c := newTestCache(t, time.Second)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()

	for _, k := range []string{"a", "b"} {
		if _, found := c.Get(k); found {
			t.Errorf("expected %s purged", k)
		}
	}
}

func TestCache_StopTwice(t *testing.T) {
	c := New(time.Second, zerolog.Nop())
	c.Stop()
	c.Stop()
}

func TestFetch(t *testing.T) {
	c := newTestCache(t, time.Second)
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"x"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(context.Background(), c, "k", load)
		if err != nil || len(got) != 1 {
			t.Fatalf("unexpected result %v (%v)", got, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 load, got %d", calls)
	}
}

func TestFetch_ErrorNotCached(t *testing.T) {
	c := newTestCache(t, time.Second)
	boom := errors.New("boom")

	_, err := Fetch(context.Background(), c, "k", func(context.Context) (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected failed load not to be cached")
	}
}

func TestFetch_NilCache(t *testing.T) {
	got, err := Fetch(context.Background(), nil, "k", func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("expected 7, got %d (%v)", got, err)
	}
}

func TestFetch_ConcurrentMissesLoadOnce(t *testing.T) {
	c := newTestCache(t, time.Second)
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Fetch(context.Background(), c, "k", load)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 load, got %d", n)
	}
	for i, got := range results {
		if got != 42 {
			t.Errorf("caller %d: expected 42, got %d", i, got)
		}
	}
}
