package redislock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/util/mutex"
)

const (
	retryMinBackoff = 16 * time.Millisecond
	retryMaxBackoff = 4096 * time.Millisecond
	retryLimit      = 32
)

type redislockLocker struct {
	lc      *redislock.Client
	lockTtl time.Duration
}

func NewLocker(client redislock.RedisClient, lockTtl time.Duration) mutex.Locker {
	return &redislockLocker{
		lc:      redislock.New(client),
		lockTtl: lockTtl,
	}
}

func (lr redislockLocker) Obtain(ctx context.Context, key string) (mutex.Lock, error) {
	lock, err := lr.lc.Obtain(ctx, key, lr.lockTtl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.ExponentialBackoff(retryMinBackoff, retryMaxBackoff), retryLimit),
	})
	if err != nil {
		return nil, errors.Join(adapter.ErrFailedLock, err)
	}
	return &redislockLock{lock: lock}, nil
}

type redislockLock struct {
	lock *redislock.Lock
}

func (l redislockLock) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return errors.Join(adapter.ErrFailedUnlock, err)
	}
	return nil
}
