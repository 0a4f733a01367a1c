package sync

import (
	"context"
	"errors"

	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/util/mutex"
)

type syncLocker struct {
	km *mutex.KeyedMutex
}

// NewLocker returns an in-process locker.
func NewLocker() mutex.Locker {
	return &syncLocker{
		km: mutex.NewKeyedMutex(),
	}
}

func (lr syncLocker) Obtain(ctx context.Context, key string) (mutex.Lock, error) {
	if err := lr.km.Lock(ctx, key); err != nil {
		return nil, errors.Join(adapter.ErrFailedLock, err)
	}

	return &syncLock{
		km:  lr.km,
		key: key,
	}, nil
}

type syncLock struct {
	km       *mutex.KeyedMutex
	key      string
	released bool
}

func (l *syncLock) Release(ctx context.Context) error {
	if l.released {
		return adapter.ErrFailedUnlock
	}
	l.released = true
	l.km.Unlock(l.key)
	return nil
}
