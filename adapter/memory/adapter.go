package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/util/mutex"
	syncmutex "github.com/ezraisw/konvert/adapter/util/mutex/sync"
	"github.com/karlseguin/ccache/v2"
)

// ccache has no notion of a permanent item.
const noExpiration = 100 * 365 * 24 * time.Hour

type memoryAdapter struct {
	cacheCfg *ccache.Configuration
	once     sync.Once
	cache    *ccache.Cache
	locker   mutex.Locker
}

func NewAdapter() adapter.Adapter {
	return NewAdapterWithConfiguration(ccache.Configure())
}

func NewAdapterWithConfiguration(cacheCfg *ccache.Configuration) adapter.Adapter {
	return &memoryAdapter{
		cacheCfg: cacheCfg,
		locker:   syncmutex.NewLocker(),
	}
}

func (a *memoryAdapter) getCache() *ccache.Cache {
	// Lazily create the instance.
	a.once.Do(func() {
		a.cache = ccache.New(a.cacheCfg)
	})

	return a.cache
}

func (a *memoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	item := a.getCache().Get(key)
	return item != nil && !item.Expired(), nil
}

func (a *memoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	item := a.getCache().Get(key)
	if item == nil || item.Expired() {
		return nil, adapter.ErrNotFound
	}

	// Only this adapter writes to the cache.
	value := item.Value().([]byte)

	return value, nil
}

func (a *memoryAdapter) Set(ctx context.Context, key string, ttl time.Duration, data []byte) error {
	if ttl <= 0 {
		ttl = noExpiration
	}

	// Copy so callers may reuse their buffer.
	a.getCache().Set(key, append([]byte(nil), data...), ttl)
	return nil
}

func (a *memoryAdapter) Delete(ctx context.Context, key string) error {
	a.getCache().Delete(key)
	return nil
}

func (a *memoryAdapter) ObtainLock(ctx context.Context, key string) (adapter.Lock, error) {
	return a.locker.Obtain(ctx, key)
}
