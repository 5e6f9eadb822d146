package lending

import (
	"math"
	"math/rand"
	"testing"

	"defilend/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPool(supplied, borrowed uint64) core.Pool {
	pool := InitializePool()
	pool.TotalSupplied = core.Amount(supplied)
	pool.TotalBorrowed = core.Amount(borrowed)
	return pool
}

func newPosition(amount uint64) core.UserPosition {
	return core.UserPosition{
		ID:        PositionID("alice"),
		UserID:    "alice",
		Amount:    core.Amount(amount),
		TokenType: core.TokenTypeSOL,
		Version:   1,
	}
}

func TestInitializePool(t *testing.T) {
	pool := InitializePool()
	assert.Equal(t, PoolID(), pool.ID)
	assert.EqualValues(t, 0, pool.TotalSupplied)
	assert.EqualValues(t, 0, pool.TotalBorrowed)
	assert.Equal(t, "simple", pool.InterestRateModel)
}

func TestSupply(t *testing.T) {
	t.Run("first supply creates position", func(t *testing.T) {
		pool, position, err := Supply(newPool(0, 0), nil, 100)
		require.NoError(t, err)
		assert.EqualValues(t, 100, pool.TotalSupplied)
		assert.EqualValues(t, 0, pool.TotalBorrowed)
		assert.EqualValues(t, 100, position.Amount)
		assert.Equal(t, "SOL", position.TokenType)
	})

	t.Run("increments existing position and resets label", func(t *testing.T) {
		prev := newPosition(100)
		prev.TokenType = "USDC"

		pool, position, err := Supply(newPool(100, 10), &prev, 50)
		require.NoError(t, err)
		assert.EqualValues(t, 150, pool.TotalSupplied)
		assert.EqualValues(t, 10, pool.TotalBorrowed)
		assert.EqualValues(t, 150, position.Amount)
		assert.Equal(t, "SOL", position.TokenType)
		assert.Equal(t, prev.ID, position.ID)
		assert.Equal(t, "USDC", prev.TokenType, "input must not be mutated")
	})

	t.Run("pool overflow", func(t *testing.T) {
		pool := newPool(math.MaxUint64, 0)
		_, _, err := Supply(pool, nil, 1)
		assert.Equal(t, core.ErrOverflow, err)
		assert.EqualValues(t, uint64(math.MaxUint64), pool.TotalSupplied)
	})

	t.Run("position overflow", func(t *testing.T) {
		prev := newPosition(math.MaxUint64)
		_, _, err := Supply(newPool(0, 0), &prev, 1)
		assert.Equal(t, core.ErrOverflow, err)
		assert.EqualValues(t, uint64(math.MaxUint64), prev.Amount)
	})
}

func TestBorrow(t *testing.T) {
	position := newPosition(100)

	pool, err := Borrow(newPool(100, 0), position, 60)
	require.NoError(t, err)
	assert.EqualValues(t, 100, pool.TotalSupplied)
	assert.EqualValues(t, 60, pool.TotalBorrowed)
	assert.EqualValues(t, 100, position.Amount)

	// collateral is never locked, the same deposit backs another borrow
	pool, err = Borrow(pool, position, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 160, pool.TotalBorrowed)

	_, err = Borrow(pool, position, 101)
	assert.Equal(t, core.ErrInsufficientCollateral, err)

	_, err = Borrow(newPool(0, math.MaxUint64), position, 1)
	assert.Equal(t, core.ErrOverflow, err)
}

func TestRepay(t *testing.T) {
	pool, err := Repay(newPool(100, 60), 60)
	require.NoError(t, err)
	assert.EqualValues(t, 100, pool.TotalSupplied)
	assert.EqualValues(t, 0, pool.TotalBorrowed)

	_, err = Repay(pool, 1)
	assert.Equal(t, core.ErrUnderflow, err)
	assert.EqualValues(t, 0, pool.TotalBorrowed)
}

func TestWithdraw(t *testing.T) {
	position := newPosition(100)

	_, err := Withdraw(position, 150)
	assert.Equal(t, core.ErrInsufficientCollateral, err)
	assert.EqualValues(t, 100, position.Amount)

	next, err := Withdraw(position, 40)
	require.NoError(t, err)
	assert.EqualValues(t, 60, next.Amount)
	assert.Equal(t, "SOL", next.TokenType)

	next, err = Withdraw(next, 60)
	require.NoError(t, err)
	assert.EqualValues(t, 0, next.Amount)
}

func TestTransitionsRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		supplied := r.Uint64()
		borrowed := r.Uint64()
		deposited := r.Uint64()
		amount := r.Uint64()
		if i%2 == 0 {
			amount >>= 32
		}

		pool := newPool(supplied, borrowed)
		position := newPosition(deposited)

		next, _, err := Supply(pool, &position, amount)
		if supplied > math.MaxUint64-amount || deposited > math.MaxUint64-amount {
			assert.Equal(t, core.ErrOverflow, err)
		} else {
			require.NoError(t, err)
			assert.Equal(t, supplied+amount, next.TotalSupplied.Uint64())
		}

		next, err = Borrow(pool, position, amount)
		switch {
		case amount > deposited:
			assert.Equal(t, core.ErrInsufficientCollateral, err)
		case borrowed > math.MaxUint64-amount:
			assert.Equal(t, core.ErrOverflow, err)
		default:
			require.NoError(t, err)
			assert.Equal(t, borrowed+amount, next.TotalBorrowed.Uint64())
		}

		next, err = Repay(pool, amount)
		if amount > borrowed {
			assert.Equal(t, core.ErrUnderflow, err)
		} else {
			require.NoError(t, err)
			assert.Equal(t, borrowed-amount, next.TotalBorrowed.Uint64())
		}

		withdrawn, err := Withdraw(position, amount)
		if amount > deposited {
			assert.Equal(t, core.ErrInsufficientCollateral, err)
		} else {
			require.NoError(t, err)
			assert.Equal(t, deposited-amount, withdrawn.Amount.Uint64())
		}

		// inputs are values, failures can never leak partial updates
		assert.Equal(t, newPool(supplied, borrowed), pool)
		assert.Equal(t, newPosition(deposited), position)
	}
}

func TestCheckedMath(t *testing.T) {
	v, err := AddUint64(math.MaxUint64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, err = AddUint64(math.MaxUint64, 1)
	assert.Equal(t, core.ErrOverflow, err)

	v, err = SubUint64(1, 1)
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = SubUint64(0, 1)
	assert.Equal(t, core.ErrUnderflow, err)
}

func TestPositionID(t *testing.T) {
	assert.Equal(t, PositionID("alice"), PositionID("alice"))
	assert.NotEqual(t, PositionID("alice"), PositionID("bob"))
	assert.NotEqual(t, PoolID(), PositionID(""))
}
