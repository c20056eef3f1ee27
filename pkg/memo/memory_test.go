package memo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/memo"
)

func entry(id string) memo.Entry {
	return memo.Entry{EnvironmentID: id}
}

func TestMemoryStore_Evicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memo.NewMemoryStore(memo.WithCapacity(2))

	require.NoError(t, s.Save(ctx, entry("a")))
	require.NoError(t, s.Save(ctx, entry("b")))

	// touching a makes b the eviction candidate
	_, err := s.Load(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, entry("c")))
	assert.Equal(t, 2, s.Len())

	_, err = s.Load(ctx, "b")
	assert.ErrorIs(t, err, memo.ErrNotFound)
	_, err = s.Load(ctx, "a")
	assert.NoError(t, err)
	_, err = s.Load(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryStore_OverwriteKeepsSize(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memo.NewMemoryStore(memo.WithCapacity(2))

	for i := range 5 {
		e := entry("a")
		e.UpdatedAt = time.Unix(int64(i), 0)
		require.NoError(t, s.Save(ctx, e))
	}
	assert.Equal(t, 1, s.Len())

	got, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(4, 0), got.UpdatedAt)
}

func TestMemoryStore_EntriesAreIsolated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memo.NewMemoryStore()

	saved := entry("a")
	saved.Encoded = classify.Encoded{
		Values: []string{"chrome", "desktop"},
		Index:  map[string]int{"b": 0, "d": 1},
	}
	require.NoError(t, s.Save(ctx, saved))

	saved.Encoded.Values[0] = "changed after save"
	saved.Encoded.Index["x"] = 9

	loaded, err := s.Load(ctx, "a")
	require.NoError(t, err)
	loaded.Encoded.Values[1] = "changed after load"
	delete(loaded.Encoded.Index, "b")

	again, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"chrome", "desktop"}, again.Encoded.Values)
	assert.Equal(t, map[string]int{"b": 0, "d": 1}, again.Encoded.Index)
}

func TestMemoryStore_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Unix(1000, 0)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	s := memo.NewMemoryStore(memo.WithTTL(time.Minute), memo.WithMemoryClock(clock))
	require.NoError(t, s.Save(ctx, entry("a")))

	advance(59 * time.Second)
	_, err := s.Load(ctx, "a")
	require.NoError(t, err)

	advance(time.Second)
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, memo.ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := memo.NewMemoryStore()
	assert.ErrorIs(t, s.Save(ctx, entry("a")), context.Canceled)
	_, err := s.Load(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memo.NewMemoryStore(memo.WithCapacity(50))

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				id := fmt.Sprintf("env-%d-%d", g, i%20)
				assert.NoError(t, s.Save(ctx, entry(id)))
				_, _ = s.Load(ctx, id)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 50)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	store, closeFn, err := memo.Open(context.Background(), memo.Config{Backend: memo.BackendMemory, Capacity: 3})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.IsType(t, &memo.MemoryStore{}, store)
	assert.NoError(t, closeFn())

	_, closeFn, err = memo.Open(context.Background(), memo.Config{Backend: "etcd"})
	assert.ErrorIs(t, err, memo.ErrUnknownBackend)
	assert.NotNil(t, closeFn)

	_, _, err = memo.Open(context.Background(), memo.Config{
		Backend: memo.BackendRedis,
		Redis:   memo.RedisConfig{ConnectionURL: "://bad", ConnectTimeout: time.Second},
	})
	assert.ErrorIs(t, err, memo.ErrInvalidRedisURL)
}
