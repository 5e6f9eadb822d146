// Package locker serializes read-modify-write cycles on ledger records.
package locker

import (
	"context"
	"sync"

	"defilend/core"
)

// Local in-process locker, enough for a single api server
func Local() core.Locker {
	return &localLocker{
		keys: make(map[string]*entry),
	}
}

type entry struct {
	ch   chan struct{}
	refs int
}

type localLocker struct {
	mux  sync.Mutex
	keys map[string]*entry
}

func (l *localLocker) acquire(key string) *entry {
	l.mux.Lock()
	defer l.mux.Unlock()

	e, ok := l.keys[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.keys[key] = e
	}

	e.refs++
	return e
}

func (l *localLocker) release(key string, e *entry) {
	l.mux.Lock()
	defer l.mux.Unlock()

	if e.refs--; e.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquire(key)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}
