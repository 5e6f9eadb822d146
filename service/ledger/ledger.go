package ledger

import (
	"context"

	"defilend/core"
	"defilend/pkg/lending"
	"defilend/pkg/sysversion"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
)

const (
	poolLockKey = "pool"
)

// Transactor runs fn inside a database transaction, *db.DB implements it
type Transactor interface {
	Tx(fn func(tx *db.DB) error) error
}

type ledgerService struct {
	db           Transactor
	pools        core.IPoolStore
	positions    core.IPositionStore
	transactions core.TransactionStore
	locker       core.Locker
	versions     core.SysVersionStore

	// positionCache serves Position only, actions read positions uncached
	positionCache core.IPositionStore
}

// Option configures the ledger service
type Option func(s *ledgerService)

// WithPositionCache serves Position queries from cache.
// Positions saved by this service are evicted from it after the db transaction ends.
func WithPositionCache(cache core.IPositionStore) Option {
	return func(s *ledgerService) {
		s.positionCache = cache
	}
}

// New new ledger service
func New(
	db Transactor,
	pools core.IPoolStore,
	positions core.IPositionStore,
	transactions core.TransactionStore,
	locker core.Locker,
	versions core.SysVersionStore,
	opts ...Option,
) core.ILedgerService {
	s := &ledgerService{
		db:            db,
		pools:         pools,
		positions:     positions,
		transactions:  transactions,
		locker:        locker,
		versions:      versions,
		positionCache: positions,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *ledgerService) InitializePool(ctx context.Context) (*core.Pool, error) {
	log := logger.FromContext(ctx).WithField("service", "ledger")

	unlock, err := s.locker.Lock(ctx, poolLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	pool := lending.InitializePool()
	if err := s.db.Tx(func(tx *db.DB) error {
		return s.pools.Create(ctx, tx, &pool)
	}); err != nil {
		if err != core.ErrPoolAlreadyExists {
			log.WithError(err).Errorln("pools.Create")
		}
		return nil, err
	}

	log.Infoln("pool initialized", pool.ID)
	return &pool, nil
}

func (s *ledgerService) Pool(ctx context.Context) (*core.Pool, error) {
	pool, err := s.pools.Find(ctx, lending.PoolID())
	if err != nil {
		return nil, err
	}

	if pool.ID == "" {
		return nil, core.ErrPoolNotFound
	}

	return pool, nil
}

func (s *ledgerService) Position(ctx context.Context, userID string) (*core.UserPosition, error) {
	if userID == "" {
		return nil, core.ErrInvalidUser
	}

	position, err := s.positionCache.Find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !position.Exists() {
		return nil, core.ErrPositionNotFound
	}

	return position, nil
}

func (s *ledgerService) Supply(ctx context.Context, req *core.LedgerRequest) (*core.Receipt, error) {
	return s.apply(ctx, core.ActionTypeSupply, req, func(st *state) error {
		var prev *core.UserPosition
		if st.position.Exists() {
			prev = st.position
		}

		pool, position, err := lending.Supply(*st.pool, prev, req.Amount)
		if err != nil {
			return err
		}

		if prev == nil {
			position.ID = lending.PositionID(req.UserID)
			position.UserID = req.UserID
		}

		st.pool, st.position = &pool, &position
		return nil
	})
}

func (s *ledgerService) Borrow(ctx context.Context, req *core.LedgerRequest) (*core.Receipt, error) {
	return s.apply(ctx, core.ActionTypeBorrow, req, func(st *state) error {
		if !st.position.Exists() {
			return core.ErrPositionNotFound
		}

		pool, err := lending.Borrow(*st.pool, *st.position, req.Amount)
		if err != nil {
			return err
		}

		if st.sysversion >= sysversion.StrictVersion && pool.TotalBorrowed > pool.TotalSupplied {
			return core.ErrInsufficientLiquidity
		}

		st.pool = &pool
		return nil
	})
}

func (s *ledgerService) Repay(ctx context.Context, req *core.LedgerRequest) (*core.Receipt, error) {
	return s.apply(ctx, core.ActionTypeRepay, req, func(st *state) error {
		pool, err := lending.Repay(*st.pool, req.Amount)
		if err != nil {
			return err
		}

		st.pool = &pool
		return nil
	})
}

func (s *ledgerService) Withdraw(ctx context.Context, req *core.LedgerRequest) (*core.Receipt, error) {
	return s.apply(ctx, core.ActionTypeWithdraw, req, func(st *state) error {
		if !st.position.Exists() {
			return core.ErrPositionNotFound
		}

		position, err := lending.Withdraw(*st.position, req.Amount)
		if err != nil {
			return err
		}

		st.position = &position
		return nil
	})
}

func newTraceID(req *core.LedgerRequest) string {
	if req.TraceID != "" {
		return req.TraceID
	}

	return uuid.New()
}
