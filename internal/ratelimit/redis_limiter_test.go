package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, rueidis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return mr, client
}

func TestRedisLimiter_LimitAndWindow(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, "rl:", Options{Limit: 2, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}

	ok, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok, "keys are counted separately")

	ttl := mr.TTL("rl:1.2.3.4")
	assert.True(t, ttl > 0 && ttl <= time.Minute, "ttl %s", ttl)

	mr.FastForward(time.Minute + time.Second)

	ok, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "window expired")
}

func TestRedisLimiter_KeyWithoutTTLRecovers(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, "rl:", Options{Limit: 2, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, mr.Set("rl:1.2.3.4", "50"))
	require.Zero(t, mr.TTL("rl:1.2.3.4"))

	ok, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.TTL("rl:1.2.3.4") > 0)

	mr.FastForward(time.Minute + time.Second)

	ok, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_BackendError(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, "rl:", Options{Limit: 2, Window: time.Minute})

	mr.SetError("ERR backend unavailable")
	_, err := limiter.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}
