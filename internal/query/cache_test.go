package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(val string, calls *int32) Fetch {
	return func(context.Context) ([]byte, error) {
		atomic.AddInt32(calls, 1)
		return []byte(val), nil
	}
}

func TestReadCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())
	var calls int32

	for i := 0; i < 3; i++ {
		b, err := c.Read(ctx, "u/products", counter("v1", &calls))
		require.NoError(t, err)
		assert.Equal(t, "v1", string(b))
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	require.NoError(t, c.Invalidate(ctx, "u/products"))
	b, err := c.Read(ctx, "u/products", counter("v2", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestConcurrentReadsShareOneFetch(t *testing.T) {
	c := New(NewMemoryStore())
	release := make(chan struct{})
	var calls int32
	fetch := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("rows"), nil
	}

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := c.Read(context.Background(), "u/orders", fetch)
			if err == nil {
				results[i] = string(b)
			}
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "rows", r)
	}
}

func TestFetchFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())
	boom := errors.New("backend down")

	_, err := c.Read(ctx, "k", func(context.Context) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	var calls int32
	b, err := c.Read(ctx, "k", counter("ok", &calls))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(b))
	assert.EqualValues(t, 1, calls)
}

func TestInvalidationDuringFetchDiscardsResult(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan []byte)
	go func() {
		b, _ := c.Read(ctx, "k", func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte("stale"), nil
		})
		done <- b
	}()

	<-started
	require.NoError(t, c.Invalidate(ctx, "k"))

	// a read issued after invalidation must not join the stale fetch
	var calls int32
	b, err := c.Read(ctx, "k", counter("fresh", &calls))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(b))

	close(release)
	assert.Equal(t, "stale", string(<-done))

	b, err = c.Read(ctx, "k", counter("unused", &calls))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(b))
	assert.EqualValues(t, 1, calls)
}

func TestReadHonoursContext(t *testing.T) {
	c := New(NewMemoryStore())
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.Read(ctx, "k", func(context.Context) ([]byte, error) {
		<-release
		return []byte("late"), nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMutateInvalidatesOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())
	var calls int32
	_, err := c.Read(ctx, "products", counter("before", &calls))
	require.NoError(t, err)

	rejected := errors.New("rejected")
	err = c.Mutate(ctx, func(context.Context) error { return rejected }, "products")
	assert.ErrorIs(t, err, rejected)

	b, err := c.Read(ctx, "products", counter("after", &calls))
	require.NoError(t, err)
	assert.Equal(t, "before", string(b))

	require.NoError(t, c.Mutate(ctx, func(context.Context) error { return nil }, "products"))
	b, err = c.Read(ctx, "products", counter("after", &calls))
	require.NoError(t, err)
	assert.Equal(t, "after", string(b))
	assert.EqualValues(t, 2, calls)
}

func TestScoped(t *testing.T) {
	assert.Equal(t, Key("a@x.com/products"), Scoped("a@x.com", "products"))
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}

type failingDeleteStore struct {
	*MemoryStore
}

func (failingDeleteStore) Delete(context.Context, ...string) error {
	return errors.New("redis down")
}

func TestMutateSurvivesFailedDelete(t *testing.T) {
	ctx := context.Background()
	c := New(failingDeleteStore{NewMemoryStore()})
	var calls int32

	b, err := c.Read(ctx, "k", counter("v1", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(b))

	require.NoError(t, c.Mutate(ctx, func(context.Context) error { return nil }, "k"))

	b, err = c.Read(ctx, "k", counter("v2", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	b, err = c.Read(ctx, "k", counter("v3", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b), "fresh value is served from the store again")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}
