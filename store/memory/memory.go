// Package memory keeps every ledger record in process memory.
// It backs `server --memory` and the tests, data is lost on exit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"defilend/core"
	"defilend/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// DB holds the records of every store. Tx restores the previous contents
// when fn fails, like a rolled back database transaction.
type DB struct {
	// txMux serializes transactions, a rollback restores every map
	txMux        sync.Mutex
	mux          sync.Mutex
	pools        map[string]core.Pool
	positions    map[string]core.UserPosition
	transactions map[string]core.Transaction
	nextID       int64

	// FailCreate makes transaction inserts fail
	FailCreate error
}

// New empty memory db
func New() *DB {
	return &DB{
		pools:        map[string]core.Pool{},
		positions:    map[string]core.UserPosition{},
		transactions: map[string]core.Transaction{},
	}
}

// Tx implements the db transactor
func (m *DB) Tx(fn func(tx *db.DB) error) error {
	m.txMux.Lock()
	defer m.txMux.Unlock()

	m.mux.Lock()
	pools := CopyMap(m.pools)
	positions := CopyMap(m.positions)
	transactions := CopyMap(m.transactions)
	m.mux.Unlock()

	if err := fn(&db.DB{}); err != nil {
		m.mux.Lock()
		m.pools, m.positions, m.transactions = pools, positions, transactions
		m.mux.Unlock()
		return err
	}

	return nil
}

// CopyMap shallow copy of a map
func CopyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type pools struct{ *DB }

func (m pools) Create(_ context.Context, _ *db.DB, pool *core.Pool) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if _, ok := m.pools[pool.ID]; ok {
		return core.ErrPoolAlreadyExists
	}

	pool.Version = 1
	pool.CreatedAt = time.Now()
	pool.UpdatedAt = pool.CreatedAt
	m.pools[pool.ID] = *pool
	return nil
}

func (m pools) Find(_ context.Context, id string) (*core.Pool, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	pool := m.pools[id]
	return &pool, nil
}

func (m pools) Update(_ context.Context, _ *db.DB, pool *core.Pool) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if m.pools[pool.ID].Version != pool.Version {
		return db.ErrOptimisticLock
	}

	pool.Version++
	pool.UpdatedAt = time.Now()
	m.pools[pool.ID] = *pool
	return nil
}

type positions struct{ *DB }

func (m positions) Find(_ context.Context, userID string) (*core.UserPosition, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	position := m.positions[userID]
	return &position, nil
}

func (m positions) Save(_ context.Context, _ *db.DB, position *core.UserPosition) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if m.positions[position.UserID].Version != position.Version {
		return db.ErrOptimisticLock
	}

	if position.Version == 0 {
		position.CreatedAt = time.Now()
	}
	position.Version++
	position.UpdatedAt = time.Now()
	m.positions[position.UserID] = *position
	return nil
}

func (m positions) SumAmount(context.Context) (decimal.Decimal, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	sum := decimal.Zero
	for _, p := range m.positions {
		sum = sum.Add(number.Decimal(p.Amount.String()))
	}
	return sum, nil
}

func (m positions) Count(context.Context) (int64, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	return int64(len(m.positions)), nil
}

type transactions struct{ *DB }

func (m transactions) Create(_ context.Context, tx *db.DB, transaction *core.Transaction) error {
	if tx == nil {
		m.txMux.Lock()
		defer m.txMux.Unlock()
	}

	m.mux.Lock()
	defer m.mux.Unlock()

	if m.FailCreate != nil {
		return m.FailCreate
	}

	if _, ok := m.transactions[transaction.TraceID]; ok {
		return core.ErrInvalidTrace
	}

	m.nextID++
	transaction.ID = m.nextID
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	m.transactions[transaction.TraceID] = *transaction
	return nil
}

func (m transactions) FindByTraceID(_ context.Context, traceID string) (*core.Transaction, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	transaction := m.transactions[traceID]
	return &transaction, nil
}

func (m transactions) ListByUser(_ context.Context, userID string, limit int) ([]*core.Transaction, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	var transactions []*core.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID {
			t := t
			transactions = append(transactions, &t)
		}
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].ID > transactions[j].ID
	})

	if limit <= 0 {
		limit = 50
	}
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

// Pools pool store
func (m *DB) Pools() core.IPoolStore { return pools{m} }

// Positions position store
func (m *DB) Positions() core.IPositionStore { return positions{m} }

// Transactions transaction store
func (m *DB) Transactions() core.TransactionStore { return transactions{m} }

// Snapshot copies of the current records
func (m *DB) Snapshot() (map[string]core.Pool, map[string]core.UserPosition, map[string]core.Transaction) {
	m.mux.Lock()
	defer m.mux.Unlock()

	return CopyMap(m.pools), CopyMap(m.positions), CopyMap(m.transactions)
}
