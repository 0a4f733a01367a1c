package redsync

import (
	"context"
	"errors"

	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/util/mutex"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis"
)

type redsyncLocker struct {
	rs      *redsync.Redsync
	options []redsync.Option
}

func NewLocker(pools ...redis.Pool) mutex.Locker {
	return NewLockerWithOptions(pools, nil)
}

// NewLockerWithOptions applies options such as redsync.WithExpiry to every mutex.
func NewLockerWithOptions(pools []redis.Pool, options []redsync.Option) mutex.Locker {
	return &redsyncLocker{
		rs:      redsync.New(pools...),
		options: options,
	}
}

func (lr redsyncLocker) Obtain(ctx context.Context, key string) (mutex.Lock, error) {
	m := lr.rs.NewMutex(key, lr.options...)

	if err := m.LockContext(ctx); err != nil {
		return nil, errors.Join(adapter.ErrFailedLock, err)
	}

	return &redsyncLock{mutex: m}, nil
}

type redsyncLock struct {
	mutex *redsync.Mutex
}

func (l redsyncLock) Release(ctx context.Context) error {
	ok, err := l.mutex.UnlockContext(ctx)
	if err != nil {
		return errors.Join(adapter.ErrFailedUnlock, err)
	}
	if !ok {
		return adapter.ErrFailedUnlock
	}
	return nil
}
