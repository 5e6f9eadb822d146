package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := Local()

	unlock, err := l.Lock(ctx, "pool")
	require.NoError(t, err)

	// other keys are independent
	unlockOther, err := l.Lock(ctx, "position:alice")
	require.NoError(t, err)
	unlockOther()

	timeout, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(timeout, "pool")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // idempotent

	unlock, err = l.Lock(ctx, "pool")
	require.NoError(t, err)
	unlock()

	assert.Empty(t, l.(*localLocker).keys)
}

func TestLocalLockerSerializes(t *testing.T) {
	ctx := context.Background()
	l := Local()

	var (
		wg      sync.WaitGroup
		counter int
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "pool")
			if err != nil {
				t.Error(err)
				return
			}
			defer unlock()

			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}

	wg.Wait()
	assert.Equal(t, 50, counter)
}
