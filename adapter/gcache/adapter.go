package gcache

import (
	"context"
	"errors"
	"time"

	"github.com/bluele/gcache"
	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/util/mutex"
	syncmutex "github.com/ezraisw/konvert/adapter/util/mutex/sync"
)

const DefaultSize = 8192

type gcacheAdapter struct {
	cache  gcache.Cache
	locker mutex.Locker
}

// NewAdapter returns an in-process LRU adapter holding at most DefaultSize entries.
func NewAdapter() adapter.Adapter {
	return NewAdapterWithCache(gcache.New(DefaultSize).LRU().Build())
}

func NewAdapterWithCache(cache gcache.Cache) adapter.Adapter {
	return &gcacheAdapter{
		cache:  cache,
		locker: syncmutex.NewLocker(),
	}
}

func (a *gcacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.Get(ctx, key)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (a *gcacheAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := a.cache.Get(key)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			err = adapter.ErrNotFound
		}

		return nil, err
	}

	// Only this adapter writes to the cache.
	return value.([]byte), nil
}

func (a *gcacheAdapter) Set(ctx context.Context, key string, ttl time.Duration, data []byte) error {
	// Copy so callers may reuse their buffer.
	data = append([]byte(nil), data...)

	if ttl <= 0 {
		return a.cache.Set(key, data)
	}
	return a.cache.SetWithExpire(key, data, ttl)
}

func (a *gcacheAdapter) Delete(ctx context.Context, key string) error {
	a.cache.Remove(key)
	return nil
}

func (a *gcacheAdapter) ObtainLock(ctx context.Context, key string) (adapter.Lock, error) {
	return a.locker.Obtain(ctx, key)
}
