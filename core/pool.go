package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

const (
	// InterestRateModelSimple the only interest rate model, stored as a label
	InterestRateModelSimple = "simple"
)

// Pool the shared lending pool, one per deployment
type Pool struct {
	ID                string    `sql:"size:36;PRIMARY_KEY" json:"id"`
	TotalSupplied     Amount    `sql:"type:numeric(20,0);default:0" json:"total_supplied"`
	TotalBorrowed     Amount    `sql:"type:numeric(20,0);default:0" json:"total_borrowed"`
	InterestRateModel string    `sql:"size:50" json:"interest_rate_model"`
	Version           int64     `sql:"default:0" json:"version"`
	CreatedAt         time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPoolStore pool store interface
type IPoolStore interface {
	Create(ctx context.Context, tx *db.DB, pool *Pool) error
	// Find returns an empty pool (ID == "") if it is not initialized yet
	Find(ctx context.Context, id string) (*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}
