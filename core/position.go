package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// TokenTypeSOL label written by every supply
	TokenTypeSOL = "SOL"
)

// UserPosition deposited collateral of a participant
type UserPosition struct {
	ID        string    `sql:"size:36;PRIMARY_KEY" json:"id"`
	UserID    string    `sql:"size:64;unique_index:position_user_idx" json:"user_id"`
	Amount    Amount    `sql:"type:numeric(20,0);default:0" json:"amount"`
	TokenType string    `sql:"size:20" json:"token_type"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Exists whether the position has been persisted
func (p *UserPosition) Exists() bool {
	return p != nil && p.Version > 0
}

// IPositionStore user position store interface
type IPositionStore interface {
	// Find returns an empty position (Version == 0) if the user never supplied
	Find(ctx context.Context, userID string) (*UserPosition, error)
	Save(ctx context.Context, tx *db.DB, position *UserPosition) error
	SumAmount(ctx context.Context) (decimal.Decimal, error)
	Count(ctx context.Context) (int64, error)
}
