package views

import (
	"math"
	"testing"

	"defilend/core"

	"github.com/stretchr/testify/assert"
)

func TestPoolView(t *testing.T) {
	view := PoolView(&core.Pool{TotalSupplied: 3_000_000_000, TotalBorrowed: 1_000_000_000}, 9)
	assert.Equal(t, "3", view.Supplied.String())
	assert.Equal(t, "1", view.Borrowed.String())
	assert.Equal(t, "0.3334", view.UtilizationRate.String())

	view = PoolView(&core.Pool{}, 9)
	assert.True(t, view.UtilizationRate.IsZero())

	// more borrowed than supplied is representable
	view = PoolView(&core.Pool{TotalSupplied: 1, TotalBorrowed: 2}, 9)
	assert.Equal(t, "2", view.UtilizationRate.String())
}

func TestUnits(t *testing.T) {
	assert.Equal(t, "18446744073.709551615", Units(core.Amount(math.MaxUint64), 9).String())
	assert.Equal(t, "0.000000001", Units(1, 9).String())
	assert.Equal(t, "100", Units(100, 0).String())
}
