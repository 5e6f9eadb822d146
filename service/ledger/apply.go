package ledger

import (
	"context"

	"defilend/core"
	"defilend/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
)

// scope the records an action locks and writes.
// Locks are always taken pool first, then position.
type scope struct {
	lockPool      bool
	lockPosition  bool
	readPosition  bool
	writePool     bool
	writePosition bool
}

var scopes = map[core.ActionType]scope{
	core.ActionTypeSupply:   {lockPool: true, lockPosition: true, readPosition: true, writePool: true, writePosition: true},
	core.ActionTypeBorrow:   {lockPool: true, lockPosition: true, readPosition: true, writePool: true},
	core.ActionTypeRepay:    {lockPool: true, writePool: true},
	core.ActionTypeWithdraw: {lockPosition: true, readPosition: true, writePosition: true},
}

// evicter is implemented by cached position stores
type evicter interface {
	Evict(userID string)
}

// state pre-state handed to a transition, replaced by the post-state on success
type state struct {
	pool       *core.Pool
	position   *core.UserPosition
	sysversion int64
}

func positionLockKey(userID string) string {
	return "position:" + lending.PositionID(userID)
}

func (s *ledgerService) apply(ctx context.Context, action core.ActionType, req *core.LedgerRequest, transition func(st *state) error) (*core.Receipt, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"service": "ledger",
		"action":  action,
		"user":    req.UserID,
		"amount":  req.Amount,
	})

	if req.UserID == "" {
		observe(action, core.ErrInvalidUser)
		return nil, core.ErrInvalidUser
	}

	sc := scopes[action]
	unlock, err := s.lock(ctx, sc, req.UserID)
	if err != nil {
		log.WithError(err).Errorln("lock")
		return nil, err
	}
	defer unlock()

	if req.TraceID != "" {
		receipt, err := s.replay(ctx, action, req)
		if err != nil {
			log.WithError(err).Infoln("replay")
			observe(action, err)
			return nil, err
		}

		if receipt != nil {
			log.Infoln("skip: trace already applied", req.TraceID)
			return receipt, nil
		}
	}

	st, err := s.loadState(ctx, sc, req.UserID)
	if err != nil {
		if err != core.ErrPoolNotFound {
			log.WithError(err).Errorln("load state")
		}
		observe(action, err)
		return nil, err
	}

	if err := transition(st); err != nil {
		log.WithError(err).Infoln("rejected")
		observe(action, err)
		return nil, err
	}

	// the pool is read unlocked by actions that do not write it, keep it out of the snapshot
	if !sc.writePool {
		st.pool = nil
	}

	transaction := &core.Transaction{
		TraceID: newTraceID(req),
		UserID:  req.UserID,
		Action:  action,
		Amount:  core.Amount(req.Amount),
		Token:   core.TokenTypeSOL,
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if sc.writePool {
			if err := s.pools.Update(ctx, tx, st.pool); err != nil {
				log.WithError(err).Errorln("pools.Update")
				return err
			}
		}

		if sc.writePosition {
			if err := s.positions.Save(ctx, tx, st.position); err != nil {
				log.WithError(err).Errorln("positions.Save")
				return err
			}
		}

		transaction.SetSnapshot(st.snapshot())
		if err := s.transactions.Create(ctx, tx, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			return err
		}

		return nil
	})

	if e, ok := s.positionCache.(evicter); ok && sc.writePosition {
		e.Evict(req.UserID)
	}

	if err != nil {
		observe(action, err)
		return nil, err
	}

	observe(action, nil)
	log.Infoln("applied", transaction.TraceID)

	snapshot := st.snapshot()
	return &core.Receipt{
		Transaction: transaction,
		Pool:        snapshot.Pool,
		Position:    snapshot.Position,
	}, nil
}

func (st *state) snapshot() *core.Snapshot {
	snapshot := &core.Snapshot{Pool: st.pool}
	if st.position.Exists() {
		snapshot.Position = st.position
	}

	return snapshot
}

func (s *ledgerService) lock(ctx context.Context, sc scope, userID string) (func(), error) {
	var keys []string
	if sc.lockPool {
		keys = append(keys, poolLockKey)
	}

	if sc.lockPosition {
		keys = append(keys, positionLockKey(userID))
	}

	unlocks := make([]func(), 0, len(keys))
	release := func() {
		for idx := len(unlocks) - 1; idx >= 0; idx-- {
			unlocks[idx]()
		}
	}

	for _, key := range keys {
		unlock, err := s.locker.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}

		unlocks = append(unlocks, unlock)
	}

	return release, nil
}

func (s *ledgerService) loadState(ctx context.Context, sc scope, userID string) (*state, error) {
	version, err := s.versions.ReadSysVersion(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := s.pools.Find(ctx, lending.PoolID())
	if err != nil {
		return nil, err
	}

	if pool.ID == "" {
		return nil, core.ErrPoolNotFound
	}

	st := &state{
		pool:       pool,
		sysversion: version,
	}

	if sc.readPosition {
		if st.position, err = s.positions.Find(ctx, userID); err != nil {
			return nil, err
		}
	}

	return st, nil
}

// replay returns the recorded receipt if the trace was applied before
func (s *ledgerService) replay(ctx context.Context, action core.ActionType, req *core.LedgerRequest) (*core.Receipt, error) {
	transaction, err := s.transactions.FindByTraceID(ctx, req.TraceID)
	if err != nil {
		return nil, err
	}

	if transaction.ID == 0 {
		return nil, nil
	}

	if transaction.UserID != req.UserID || transaction.Action != action || transaction.Amount.Uint64() != req.Amount {
		return nil, core.ErrInvalidTrace
	}

	snapshot, err := transaction.UnmarshalSnapshot()
	if err != nil {
		return nil, err
	}

	return &core.Receipt{
		Transaction: transaction,
		Pool:        snapshot.Pool,
		Position:    snapshot.Position,
	}, nil
}
