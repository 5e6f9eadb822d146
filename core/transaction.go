package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
)

// Transaction ledger history record
type Transaction struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string         `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	UserID    string         `sql:"size:64;index:idx_transactions_user_id" json:"user_id,omitempty"`
	Action    ActionType     `sql:"size:16" json:"action,omitempty"`
	Amount    Amount         `sql:"type:numeric(20,0)" json:"amount"`
	Token     string         `sql:"size:20" json:"token,omitempty"`
	TxHash    string         `sql:"size:128" json:"tx_hash,omitempty"`
	Data      types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at"`
}

// SetSnapshot stores the post-state of the action
func (t *Transaction) SetSnapshot(s *Snapshot) {
	t.Data = s.Bytes()
}

// UnmarshalSnapshot decode the post-state of the action
func (t *Transaction) UnmarshalSnapshot() (*Snapshot, error) {
	var s Snapshot
	if len(t.Data) == 0 {
		return &s, nil
	}

	if err := json.Unmarshal(t.Data, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Snapshot records pool and position after an action has been applied
type Snapshot struct {
	Pool     *Pool         `json:"pool,omitempty"`
	Position *UserPosition `json:"position,omitempty"`
}

// Bytes json encoded snapshot
func (s *Snapshot) Bytes() []byte {
	bs, err := json.Marshal(s)
	if err != nil {
		return []byte("{}")
	}

	return bs
}

// TransactionStore transaction store interface
type TransactionStore interface {
	// Create inserts the transaction, outside of a db transaction if tx is nil
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	// FindByTraceID returns an empty transaction (ID == 0) if not found
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
