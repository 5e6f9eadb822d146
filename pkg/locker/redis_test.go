package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *redisLocker) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, Redis(client, ttl).(*redisLocker)
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()
	mr, l := newRedisLocker(t, 10*time.Second)

	unlock, err := l.Lock(ctx, "pool")
	require.NoError(t, err)
	assert.True(t, mr.Exists(redisKeyPrefix+"pool"))
	assert.Equal(t, 10*time.Second, mr.TTL(redisKeyPrefix+"pool"))

	unlockOther, err := l.Lock(ctx, "position:alice")
	require.NoError(t, err)
	unlockOther()
	assert.False(t, mr.Exists(redisKeyPrefix+"position:alice"))

	timeout, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = l.Lock(timeout, "pool")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // idempotent
	assert.False(t, mr.Exists(redisKeyPrefix+"pool"))

	unlock, err = l.Lock(ctx, "pool")
	require.NoError(t, err)
	unlock()
}

func TestRedisLockerWaits(t *testing.T) {
	ctx := context.Background()
	_, l := newRedisLocker(t, 10*time.Second)

	unlock, err := l.Lock(ctx, "pool")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		unlock, err := l.Lock(ctx, "pool")
		if assert.NoError(t, err) {
			unlock()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("lock acquired while held")
	case <-time.After(100 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("lock not acquired after unlock")
	}
}

func TestRedisLockerExpiredUnlock(t *testing.T) {
	ctx := context.Background()
	mr, l := newRedisLocker(t, time.Second)

	stale, err := l.Lock(ctx, "pool")
	require.NoError(t, err)

	// the holder stalls past the ttl and someone else takes the lock
	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(redisKeyPrefix+"pool"))

	unlock, err := l.Lock(ctx, "pool")
	require.NoError(t, err)
	token, err := mr.Get(redisKeyPrefix + "pool")
	require.NoError(t, err)

	stale()
	got, err := mr.Get(redisKeyPrefix + "pool")
	require.NoError(t, err)
	assert.Equal(t, token, got, "stale unlock must keep the new holder's lock")

	unlock()
	assert.False(t, mr.Exists(redisKeyPrefix+"pool"))
}

func TestRedisLockerSerializes(t *testing.T) {
	ctx := context.Background()
	_, l := newRedisLocker(t, 10*time.Second)

	var (
		wg      sync.WaitGroup
		mux     sync.Mutex
		holders int
		maxSeen int
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := l.Lock(ctx, "pool")
			if !assert.NoError(t, err) {
				return
			}

			mux.Lock()
			holders++
			if holders > maxSeen {
				maxSeen = holders
			}
			mux.Unlock()

			time.Sleep(5 * time.Millisecond)

			mux.Lock()
			holders--
			mux.Unlock()
			unlock()
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}
