package goredis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/goredis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type GoRedisAdapterTestSuite struct {
	suite.Suite
	ctx     context.Context
	server  *miniredis.Miniredis
	client  *redis.Client
	adapter adapter.Adapter
}

func (s *GoRedisAdapterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.server = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.server.Addr()})
	s.adapter = goredis.NewAdapterWithLockTTL(s.client, time.Second)
}

func (s *GoRedisAdapterTestSuite) TearDownTest() {
	s.client.Close()
}

func (s *GoRedisAdapterTestSuite) TestSetGet() {
	s.Require().NoError(s.adapter.Set(s.ctx, "key", 0, []byte("value")))

	data, err := s.adapter.Get(s.ctx, "key")
	s.Require().NoError(err)
	s.Equal([]byte("value"), data)

	exists, err := s.adapter.Exists(s.ctx, "key")
	s.Require().NoError(err)
	s.True(exists)

	s.Equal(time.Duration(0), s.server.TTL("key"))
}

func (s *GoRedisAdapterTestSuite) TestGetMissing() {
	_, err := s.adapter.Get(s.ctx, "missing")
	s.ErrorIs(err, adapter.ErrNotFound)

	exists, err := s.adapter.Exists(s.ctx, "missing")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *GoRedisAdapterTestSuite) TestExpiredTTL() {
	s.Require().NoError(s.adapter.Set(s.ctx, "key", 2*time.Second, []byte("value")))
	s.Equal(2*time.Second, s.server.TTL("key"))

	s.server.FastForward(3 * time.Second)

	_, err := s.adapter.Get(s.ctx, "key")
	s.ErrorIs(err, adapter.ErrNotFound)
}

func (s *GoRedisAdapterTestSuite) TestNegativeTTLNeverExpires() {
	s.Require().NoError(s.adapter.Set(s.ctx, "key", -time.Second, []byte("value")))
	s.Equal(time.Duration(0), s.server.TTL("key"))
}

func (s *GoRedisAdapterTestSuite) TestDelete() {
	s.Require().NoError(s.adapter.Set(s.ctx, "key", 0, []byte("value")))
	s.Require().NoError(s.adapter.Delete(s.ctx, "key"))

	_, err := s.adapter.Get(s.ctx, "key")
	s.ErrorIs(err, adapter.ErrNotFound)
}

func (s *GoRedisAdapterTestSuite) TestObtainLock() {
	lock, err := s.adapter.ObtainLock(s.ctx, "lock")
	s.Require().NoError(err)
	s.True(s.server.Exists("lock"))

	timeoutCtx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()

	_, err = s.adapter.ObtainLock(timeoutCtx, "lock")
	s.ErrorIs(err, adapter.ErrFailedLock)

	s.Require().NoError(lock.Release(s.ctx))
	s.False(s.server.Exists("lock"))

	lock, err = s.adapter.ObtainLock(s.ctx, "lock")
	s.Require().NoError(err)
	s.NoError(lock.Release(s.ctx))
}

func TestRunGoRedisAdapterTestSuite(t *testing.T) {
	suite.Run(t, new(GoRedisAdapterTestSuite))
}
