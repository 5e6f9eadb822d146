package ledger

import (
	"context"
	"testing"
	"time"

	"defilend/core"
	"defilend/pkg/locker"
	"defilend/pkg/sysversion"
	"defilend/store/memory"
	"defilend/store/position"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// two api servers on one database, each with its own position cache
func TestBorrowIgnoresCachedPositions(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	l := locker.Local()

	newServer := func() core.ILedgerService {
		cache := position.Cache(m.Positions(), 16, time.Minute)
		return New(m, m.Pools(), m.Positions(), m.Transactions(), l, sysversion.Static(0), WithPositionCache(cache))
	}

	a, b := newServer(), newServer()
	_, err := a.InitializePool(ctx)
	require.NoError(t, err)

	_, err = a.Supply(ctx, req("alice", 100))
	require.NoError(t, err)

	// fill the caches of both servers
	_, err = a.Borrow(ctx, req("alice", 0))
	require.NoError(t, err)
	p, err := a.Position(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 100, p.Amount)
	_, err = b.Position(ctx, "alice")
	require.NoError(t, err)

	_, err = b.Withdraw(ctx, req("alice", 100))
	require.NoError(t, err)

	_, err = a.Borrow(ctx, req("alice", 100))
	assert.Equal(t, core.ErrInsufficientCollateral, err)

	_, err = a.Withdraw(ctx, req("alice", 1))
	assert.Equal(t, core.ErrInsufficientCollateral, err)

	pool, err := a.Pool(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pool.TotalBorrowed)
}

func TestPositionCacheEvictedOnSave(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	cache := position.Cache(m.Positions(), 16, time.Minute)
	s := New(m, m.Pools(), m.Positions(), m.Transactions(), locker.Local(), sysversion.Static(0), WithPositionCache(cache))

	_, err := s.InitializePool(ctx)
	require.NoError(t, err)

	_, err = s.Supply(ctx, req("alice", 100))
	require.NoError(t, err)

	p, err := s.Position(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 100, p.Amount)

	_, err = s.Withdraw(ctx, req("alice", 30))
	require.NoError(t, err)

	p, err = s.Position(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 70, p.Amount)
}
