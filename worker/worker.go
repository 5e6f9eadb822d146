package worker

import (
	"context"
	"sync"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker a background job run by the worker command
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func(ctx context.Context) error

// BaseJob runs OnWork on a cron schedule, skipping a tick while the
// previous run is still going
type BaseJob struct {
	Cron   *cron.Cron
	OnWork OnWork

	mux       sync.Mutex
	isRunning bool
}

// Schedule registers OnWork with the cron spec
func (job *BaseJob) Schedule(ctx context.Context, spec string) error {
	_, err := job.Cron.AddFunc(spec, func() { job.tick(ctx) })
	return err
}

func (job *BaseJob) tick(ctx context.Context) {
	job.mux.Lock()
	if job.isRunning {
		job.mux.Unlock()
		return
	}
	job.isRunning = true
	job.mux.Unlock()

	defer func() {
		job.mux.Lock()
		job.isRunning = false
		job.mux.Unlock()
	}()

	if err := job.OnWork(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("worker: run")
	}
}

// Start runs the cron until ctx is done
func (job *BaseJob) Start(ctx context.Context) error {
	job.Cron.Start()
	<-ctx.Done()
	<-job.Cron.Stop().Done()
	return nil
}
