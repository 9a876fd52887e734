package ratelimit

import (
	"context"
	"strconv"

	"github.com/redis/rueidis"
)

// hitScript counts a hit and makes sure the key expires. The TTL is set
// whenever the key has none, so a key left without one by an earlier
// failure heals on the next hit.
var hitScript = rueidis.NewLuaScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

type RedisLimiter struct {
	client rueidis.Client
	prefix string
	opts   Options
}

func NewRedisLimiter(client rueidis.Client, prefix string, opts Options) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		opts:   opts,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := strconv.FormatInt(r.opts.Window.Milliseconds(), 10)

	count, err := hitScript.Exec(ctx, r.client, []string{r.prefix + key}, []string{window}).AsInt64()
	if err != nil {
		return false, err
	}

	return count <= int64(r.opts.Limit), nil
}
