package auditor

import (
	"context"
	"time"

	"defilend/core"
	"defilend/pkg/lending"
	"defilend/pkg/number"
	"defilend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const checkpointKey = "auditor_checkpoint"

// Checkpoints keeps the time of the last audit, property.Store implements it
type Checkpoints interface {
	Save(ctx context.Context, key string, value interface{}) error
}

// Auditor compares the pool aggregates with the sum of all positions.
// Withdraw never reduces pool supplies and borrows are not tracked per
// user, so drift is expected. It is reported, never corrected.
type Auditor struct {
	worker.BaseJob
	spec        string
	pools       core.IPoolStore
	positions   core.IPositionStore
	checkpoints Checkpoints
}

// New new auditor worker
func New(
	location string,
	spec string,
	pools core.IPoolStore,
	positions core.IPositionStore,
	checkpoints Checkpoints,
) *Auditor {
	auditor := Auditor{
		spec:        spec,
		pools:       pools,
		positions:   positions,
		checkpoints: checkpoints,
	}

	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}

	auditor.Cron = cron.New(cron.WithLocation(l))
	auditor.OnWork = auditor.onWork
	return &auditor
}

// Run schedules the audit and blocks until ctx is done
func (w *Auditor) Run(ctx context.Context) error {
	if err := w.Schedule(ctx, w.spec); err != nil {
		return err
	}

	return w.Start(ctx)
}

func (w *Auditor) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "auditor")

	report, err := w.Audit(ctx)
	if err != nil {
		log.WithError(err).Errorln("audit")
		return err
	}

	if report.Pool == nil {
		log.Debugln("skip: pool not initialized")
		return nil
	}

	fields := logrus.Fields{
		"total_supplied":   report.Pool.TotalSupplied,
		"total_borrowed":   report.Pool.TotalBorrowed,
		"positions":        report.Positions,
		"positions_amount": report.PositionsAmount,
	}

	if report.Overborrowed {
		log.WithFields(fields).Warnln("pool borrows exceed supplies")
	}

	if report.SupplyDrift {
		log.WithFields(fields).Warnln("pool supplies differ from the sum of positions")
	}

	if !report.Overborrowed && !report.SupplyDrift {
		log.WithFields(fields).Debugln("pool consistent")
	}

	if err := w.checkpoints.Save(ctx, checkpointKey, report.CheckedAt); err != nil {
		log.WithError(err).Errorln("checkpoints.Save", checkpointKey)
		return err
	}

	return nil
}

// Audit builds the report, Pool is nil if the pool is not initialized yet
func (w *Auditor) Audit(ctx context.Context) (*core.AuditReport, error) {
	var (
		pool   *core.Pool
		count  int64
		amount decimal.Decimal
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pool, err = w.pools.Find(ctx, lending.PoolID())
		return
	})
	g.Go(func() (err error) {
		count, err = w.positions.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		amount, err = w.positions.SumAmount(ctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &core.AuditReport{
		Positions:       count,
		PositionsAmount: amount,
		CheckedAt:       time.Now(),
	}

	if pool.ID == "" {
		return report, nil
	}

	report.Pool = pool
	report.Overborrowed = pool.TotalBorrowed > pool.TotalSupplied
	report.SupplyDrift = !amount.Equal(number.Decimal(pool.TotalSupplied.String()))
	return report, nil
}
