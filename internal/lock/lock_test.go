package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	obsmetrics "github.com/smallbiznis/impactmap/internal/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalSerializesSameKey(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, UserKey("42"))
			require.NoError(t, err)
			defer release()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.locks)
}

func TestLocalDifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	releaseA, err := l.Acquire(ctx, UserKey("1"))
	require.NoError(t, err)
	defer releaseA()

	releaseB, err := l.Acquire(ctx, UserKey("2"))
	require.NoError(t, err)
	releaseB()
}

func TestLocalHonorsContext(t *testing.T) {
	l := NewLocal()
	release, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release()

	again, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	again()
}

func TestLocalRejectsEmptyKey(t *testing.T) {
	_, err := NewLocal().Acquire(context.Background(), "")
	assert.Error(t, err)
}

func newRedisLock(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedis(client, ttl, zap.NewNop())
	l.retryDelay = 5 * time.Millisecond
	return l, mr
}

func TestRedisAcquireSetsKeyWithTTL(t *testing.T) {
	l, mr := newRedisLock(t, 2*time.Second)
	key := UserKey("42")

	release, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 2*time.Second, mr.TTL(key))

	_, ok, err := l.TryLock(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	assert.False(t, mr.Exists(key))
}

func TestRedisReleaseChecksToken(t *testing.T) {
	l, mr := newRedisLock(t, time.Second)
	ctx := context.Background()
	key := UserKey("7")

	token, ok, err := l.TryLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, l.Release(ctx, key, "not-the-holder"))
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	// The lock expired and another node took it over.
	require.NoError(t, mr.Set(key, "other-node"))
	require.NoError(t, l.Release(ctx, key, token))
	got, err = mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "other-node", got)
}

func TestRedisAcquireTimesOutWhileHeld(t *testing.T) {
	l, mr := newRedisLock(t, 50*time.Millisecond)
	key := UserKey("9")
	require.NoError(t, mr.Set(key, "held-elsewhere"))

	_, err := l.Acquire(context.Background(), key)
	assert.ErrorIs(t, err, obsmetrics.ErrLockUnavailable)
}

func TestRedisAcquireWaitsForRelease(t *testing.T) {
	l, _ := newRedisLock(t, 2*time.Second)
	ctx := context.Background()
	key := UserKey("11")

	first, err := l.Acquire(ctx, key)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := l.Acquire(ctx, key)
		if err == nil {
			second()
		}
		close(acquired)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-acquired:
		t.Fatal("second caller acquired a held lock")
	default:
	}

	first()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second caller never acquired the lock")
	}
}

func TestRedisRejectsEmptyKey(t *testing.T) {
	l, _ := newRedisLock(t, time.Second)
	_, _, err := l.TryLock(context.Background(), "")
	assert.Error(t, err)
}
