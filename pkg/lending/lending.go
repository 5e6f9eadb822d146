// Package lending implements the pool and position transitions.
//
// Every function takes its records by value and returns the updated copies,
// so a failed call never leaves a partially modified record behind. Persisting
// the result (and serializing concurrent calls) is up to the caller.
package lending

import (
	"defilend/core"
)

// InitializePool a new empty pool
func InitializePool() core.Pool {
	return core.Pool{
		ID:                PoolID(),
		TotalSupplied:     0,
		TotalBorrowed:     0,
		InterestRateModel: core.InterestRateModelSimple,
	}
}

// Supply adds amount to the pool supplies and to the user's deposit.
// A nil position means the user never supplied before.
func Supply(pool core.Pool, position *core.UserPosition, amount uint64) (core.Pool, core.UserPosition, error) {
	supplied, err := AddUint64(pool.TotalSupplied.Uint64(), amount)
	if err != nil {
		return core.Pool{}, core.UserPosition{}, err
	}

	var next core.UserPosition
	if position == nil {
		next = core.UserPosition{Amount: core.Amount(amount)}
	} else {
		next = *position
		deposited, err := AddUint64(next.Amount.Uint64(), amount)
		if err != nil {
			return core.Pool{}, core.UserPosition{}, err
		}
		next.Amount = core.Amount(deposited)
	}

	// the label is overwritten on every supply
	next.TokenType = core.TokenTypeSOL

	pool.TotalSupplied = core.Amount(supplied)
	return pool, next, nil
}

// Borrow adds amount to the pool borrows if the user's deposit covers it.
// The deposit is neither reduced nor locked.
func Borrow(pool core.Pool, position core.UserPosition, amount uint64) (core.Pool, error) {
	if position.Amount.Uint64() < amount {
		return core.Pool{}, core.ErrInsufficientCollateral
	}

	borrowed, err := AddUint64(pool.TotalBorrowed.Uint64(), amount)
	if err != nil {
		return core.Pool{}, err
	}

	pool.TotalBorrowed = core.Amount(borrowed)
	return pool, nil
}

// Repay subtracts amount from the pool borrows. No user record is involved.
func Repay(pool core.Pool, amount uint64) (core.Pool, error) {
	borrowed, err := SubUint64(pool.TotalBorrowed.Uint64(), amount)
	if err != nil {
		return core.Pool{}, err
	}

	pool.TotalBorrowed = core.Amount(borrowed)
	return pool, nil
}

// Withdraw subtracts amount from the user's deposit. Pool supplies are left untouched.
func Withdraw(position core.UserPosition, amount uint64) (core.UserPosition, error) {
	if position.Amount.Uint64() < amount {
		return core.UserPosition{}, core.ErrInsufficientCollateral
	}

	deposited, err := SubUint64(position.Amount.Uint64(), amount)
	if err != nil {
		return core.UserPosition{}, err
	}

	position.Amount = core.Amount(deposited)
	return position, nil
}
