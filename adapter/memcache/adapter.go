package memcache

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/util/mutex"
)

const DefaultLockTTL = 8 * time.Second

type memcacheAdapter struct {
	client *memcache.Client
	locker mutex.Locker
}

func NewAdapter(client *memcache.Client) adapter.Adapter {
	return NewAdapterWithLockTTL(client, DefaultLockTTL)
}

func NewAdapterWithLockTTL(client *memcache.Client, lockTtl time.Duration) adapter.Adapter {
	return &memcacheAdapter{
		client: client,
		locker: newLocker(client, lockTtl),
	}
}

func (a memcacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.Get(ctx, key)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (a memcacheAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	item, err := a.client.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			err = adapter.ErrNotFound
		}

		return nil, err
	}

	return item.Value, nil
}

func (a memcacheAdapter) Set(ctx context.Context, key string, ttl time.Duration, data []byte) error {
	return a.client.Set(&memcache.Item{
		Key:        key,
		Value:      data,
		Expiration: expirationSeconds(ttl),
	})
}

func (a memcacheAdapter) Delete(ctx context.Context, key string) error {
	err := a.client.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

func (a memcacheAdapter) ObtainLock(ctx context.Context, key string) (adapter.Lock, error) {
	return a.locker.Obtain(ctx, key)
}

// expirationSeconds rounds ttl up to whole seconds. Zero means no expiration.
func expirationSeconds(ttl time.Duration) int32 {
	if ttl <= 0 {
		return 0
	}

	secs := (ttl + time.Second - 1) / time.Second
	return int32(secs)
}
