package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/domino14/trailbot/config"
	"github.com/domino14/trailbot/move"
)

type RedisStoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *RedisStore
	ctx   context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})
	s.store = NewRedisStoreWithClient(client)
	s.ctx = context.Background()
}

func (s *RedisStoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *RedisStoreSuite) TestMiss() {
	_, ok, err := s.store.Get(s.ctx, "trailbot:nothing")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisStoreSuite) TestPutAndGet() {
	s.Require().NoError(s.store.Put(s.ctx, "trailbot:k:-:4", move.Right))
	d, ok, err := s.store.Get(s.ctx, "trailbot:k:-:4")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(move.Right, d)

	val, err := s.mini.Get("trailbot:k:-:4")
	s.Require().NoError(err)
	s.Equal("Right", val)
}

func (s *RedisStoreSuite) TestExpiry() {
	s.Require().NoError(s.store.Put(s.ctx, "trailbot:k", move.Up))
	s.Equal(DecisionTTL, s.mini.TTL("trailbot:k"))
	s.mini.FastForward(DecisionTTL + time.Second)
	_, ok, err := s.store.Get(s.ctx, "trailbot:k")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisStoreSuite) TestGarbageValue() {
	s.Require().NoError(s.mini.Set("trailbot:bad", "sideways"))
	_, _, err := s.store.Get(s.ctx, "trailbot:bad")
	s.Error(err)
}

func (s *RedisStoreSuite) TestNewFromConfig() {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigCacheType, config.CacheTypeRedis)
	cfg.Set(config.ConfigRedisURL, "redis://"+s.mini.Addr()+"/0")
	st, err := New(cfg)
	s.Require().NoError(err)
	defer st.Close()
	s.Require().NoError(st.Put(s.ctx, "trailbot:x", move.Left))
	d, ok, err := s.store.Get(s.ctx, "trailbot:x")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(move.Left, d)
}
