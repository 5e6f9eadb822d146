package views

import (
	"defilend/core"
	"defilend/pkg/number"

	"github.com/shopspring/decimal"
)

// Pool pool view
type Pool struct {
	core.Pool
	Supplied        decimal.Decimal `json:"supplied"`
	Borrowed        decimal.Decimal `json:"borrowed"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
}

// Position position view
type Position struct {
	core.UserPosition
	Deposited decimal.Decimal `json:"deposited"`
}

// Receipt receipt view
type Receipt struct {
	Transaction *core.Transaction `json:"transaction"`
	Pool        *Pool             `json:"pool,omitempty"`
	Position    *Position         `json:"position,omitempty"`
}

// Units converts a raw amount into token units
func Units(amount core.Amount, decimals int32) decimal.Decimal {
	return number.Decimal(amount.String()).Shift(-decimals)
}

// PoolView render pool
func PoolView(pool *core.Pool, decimals int32) *Pool {
	if pool == nil {
		return nil
	}

	view := &Pool{
		Pool:            *pool,
		Supplied:        Units(pool.TotalSupplied, decimals),
		Borrowed:        Units(pool.TotalBorrowed, decimals),
		UtilizationRate: decimal.Zero,
	}

	if pool.TotalSupplied > 0 {
		// rounded up so a pool with any borrow never shows 0
		view.UtilizationRate = number.Ceil(view.Borrowed.Div(view.Supplied), 4)
	}

	return view
}

// PositionView render position
func PositionView(position *core.UserPosition, decimals int32) *Position {
	if position == nil {
		return nil
	}

	return &Position{
		UserPosition: *position,
		Deposited:    Units(position.Amount, decimals),
	}
}

// ReceiptView render receipt
func ReceiptView(receipt *core.Receipt, decimals int32) *Receipt {
	return &Receipt{
		Transaction: receipt.Transaction,
		Pool:        PoolView(receipt.Pool, decimals),
		Position:    PositionView(receipt.Position, decimals),
	}
}
