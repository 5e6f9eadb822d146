package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRequest a single supply, borrow, repay or withdraw request.
// The user is assumed to be authenticated by the caller.
type LedgerRequest struct {
	TraceID string
	UserID  string
	Amount  uint64
}

// Receipt the outcome of an applied action
type Receipt struct {
	Transaction *Transaction  `json:"transaction"`
	Pool        *Pool         `json:"pool"`
	Position    *UserPosition `json:"position,omitempty"`
}

// ILedgerService applies ledger actions atomically
type ILedgerService interface {
	InitializePool(ctx context.Context) (*Pool, error)
	Pool(ctx context.Context) (*Pool, error)
	Position(ctx context.Context, userID string) (*UserPosition, error)
	Supply(ctx context.Context, req *LedgerRequest) (*Receipt, error)
	Borrow(ctx context.Context, req *LedgerRequest) (*Receipt, error)
	Repay(ctx context.Context, req *LedgerRequest) (*Receipt, error)
	Withdraw(ctx context.Context, req *LedgerRequest) (*Receipt, error)
}

// Locker serializes access to a record
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// SysVersionStore reads the protocol version switch
type SysVersionStore interface {
	ReadSysVersion(ctx context.Context) (int64, error)
}

// AuditReport result of comparing the pool with all positions
type AuditReport struct {
	Pool            *Pool           `json:"pool"`
	Positions       int64           `json:"positions"`
	PositionsAmount decimal.Decimal `json:"positions_amount"`
	Overborrowed    bool            `json:"overborrowed"`
	SupplyDrift     bool            `json:"supply_drift"`
	CheckedAt       time.Time       `json:"checked_at"`
}
