package service

import (
	"context"
	"sync"
)

// Locker serializes the load-modify-save sequence of mutating operations.
type Locker interface {
	Lock(ctx context.Context) (Lease, error)
}

// Lease is a held lock. Check reports an error once the hold has lapsed, so a
// writer can abort before it overwrites a store someone else now owns.
type Lease interface {
	Check(ctx context.Context) error
	Release()
}

// LocalLocker is a process-wide single-writer lock. It does not coordinate with
// other processes writing the same store file.
type LocalLocker struct {
	sem chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{sem: make(chan struct{}, 1)}
}

// Lock blocks until the lock is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context) (Lease, error) {
	select {
	case l.sem <- struct{}{}:
		return &localLease{sem: l.sem}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type localLease struct {
	sem  chan struct{}
	once sync.Once
}

// Check always succeeds: a local hold lasts until Release.
func (l *localLease) Check(context.Context) error { return nil }

func (l *localLease) Release() {
	l.once.Do(func() { <-l.sem })
}
