package transaction

import (
	"context"
	"errors"

	"defilend/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
)

const (
	// DefaultLimit default page size of ListByUser
	DefaultLimit = 50
	maxLimit     = 500
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.TransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	if tx == nil {
		tx = s.db
	}

	if err := tx.Update().Create(transaction).Error; err != nil {
		if isUniqueViolation(err) {
			return core.ErrInvalidTrace
		}

		return err
	}

	return nil
}

// trace_id is the only unique column besides the primary key
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}

func (s *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	var transaction core.Transaction
	if err := s.db.View().Where("trace_id = ?", traceID).First(&transaction).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Transaction{}, nil
		}

		return nil, err
	}

	return &transaction, nil
}

func (s *transactionStore) ListByUser(ctx context.Context, userID string, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	var transactions []*core.Transaction
	if err := s.db.View().Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
