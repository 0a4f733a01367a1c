package memcache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/util/mutex"
)

const (
	retryMinBackoff = 16 * time.Millisecond
	retryMaxBackoff = 4096 * time.Millisecond

	// memcached treats a negative expiration as already expired.
	expireNow = -1
)

// memcacheLocker takes locks with ADD, which only succeeds when the key is absent.
type memcacheLocker struct {
	client  *memcache.Client
	lockTtl time.Duration
}

func newLocker(client *memcache.Client, lockTtl time.Duration) mutex.Locker {
	return &memcacheLocker{
		client:  client,
		lockTtl: lockTtl,
	}
}

func (lr memcacheLocker) Obtain(ctx context.Context, key string) (mutex.Lock, error) {
	token, err := newToken()
	if err != nil {
		return nil, errors.Join(adapter.ErrFailedLock, err)
	}

	item := &memcache.Item{
		Key:        key,
		Value:      token,
		Expiration: expirationSeconds(lr.lockTtl),
	}

	backoff := retryMinBackoff
	for {
		err := lr.client.Add(item)
		if err == nil {
			return &memcacheLock{client: lr.client, key: key, token: string(token)}, nil
		}
		if !errors.Is(err, memcache.ErrNotStored) {
			return nil, errors.Join(adapter.ErrFailedLock, err)
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, errors.Join(adapter.ErrFailedLock, ctx.Err())
		}

		backoff = nextBackoff(backoff)
	}
}

type memcacheLock struct {
	client *memcache.Client
	key    string
	token  string
}

// Release expires the lock through CAS, so a lock taken over by another holder
// after ours expired is left alone.
func (l memcacheLock) Release(ctx context.Context) error {
	item, err := l.client.Get(l.key)
	if err != nil {
		// Expired locks are not held by anyone.
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil
		}
		return errors.Join(adapter.ErrFailedUnlock, err)
	}

	expired, ok := expireIfHeld(item, l.token)
	if !ok {
		return nil
	}

	err = l.client.CompareAndSwap(expired)
	if err != nil && !isLockGone(err) {
		return errors.Join(adapter.ErrFailedUnlock, err)
	}
	return nil
}

// expireIfHeld returns a copy of item that expires immediately when stored,
// or false if the lock now belongs to someone else.
func expireIfHeld(item *memcache.Item, token string) (*memcache.Item, bool) {
	if string(item.Value) != token {
		return nil, false
	}

	expired := *item
	expired.Expiration = expireNow
	return &expired, true
}

func isLockGone(err error) bool {
	return errors.Is(err, memcache.ErrCASConflict) ||
		errors.Is(err, memcache.ErrNotStored) ||
		errors.Is(err, memcache.ErrCacheMiss)
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > retryMaxBackoff {
		return retryMaxBackoff
	}
	return d
}

func newToken() ([]byte, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return []byte(hex.EncodeToString(buf)), nil
}
