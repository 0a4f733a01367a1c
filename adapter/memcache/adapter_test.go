package memcache

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

func TestExpirationSeconds(t *testing.T) {
	cases := []struct {
		ttl      time.Duration
		expected int32
	}{
		{ttl: 0, expected: 0},
		{ttl: -time.Second, expected: 0},
		{ttl: time.Millisecond, expected: 1},
		{ttl: 2 * time.Second, expected: 2},
		{ttl: 2500 * time.Millisecond, expected: 3},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, expirationSeconds(c.ttl), c.ttl.String())
	}
}

func TestNextBackoff(t *testing.T) {
	assert.Equal(t, 32*time.Millisecond, nextBackoff(retryMinBackoff))
	assert.Equal(t, retryMaxBackoff, nextBackoff(retryMaxBackoff))
	assert.Equal(t, retryMaxBackoff, nextBackoff(3000*time.Millisecond))
}

func TestNewTokenIsUnique(t *testing.T) {
	a, err := newToken()
	assert.NoError(t, err)
	b, err := newToken()
	assert.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestExpireIfHeld(t *testing.T) {
	item := &memcache.Item{Key: "lock", Value: []byte("token"), Expiration: 8}

	expired, ok := expireIfHeld(item, "token")
	assert.True(t, ok)
	assert.Equal(t, int32(expireNow), expired.Expiration)
	assert.Equal(t, "lock", expired.Key)
	assert.Equal(t, int32(8), item.Expiration)

	_, ok = expireIfHeld(item, "other")
	assert.False(t, ok)
}

func TestIsLockGone(t *testing.T) {
	assert.True(t, isLockGone(memcache.ErrCASConflict))
	assert.True(t, isLockGone(memcache.ErrNotStored))
	assert.True(t, isLockGone(memcache.ErrCacheMiss))
	assert.False(t, isLockGone(memcache.ErrServerError))
}
