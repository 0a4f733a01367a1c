package adapter

import (
	"context"
	"time"
)

// Adapter is a byte-oriented key/value store.
// A ttl of zero or less stores the value without expiration.
type Adapter interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, ttl time.Duration, data []byte) error
	Delete(ctx context.Context, key string) error

	ObtainLock(ctx context.Context, key string) (Lock, error)
}

type Lock interface {
	Release(ctx context.Context) error
}
