package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// allowScript runs the whole fixed-window check atomically on the Redis side.
// Rejections do not increment, matching the in-memory store. The record TTL
// tracks the remaining window so expiry is native and no sweep is needed.
//
// KEYS[1] record key, ARGV[1] max requests, ARGV[2] window ms, ARGV[3] now ms.
// Returns {allowed, count, resetMs}.
var allowScript = redis.NewScript(`
local max = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local reset = redis.call("HGET", KEYS[1], "reset")
if (not reset) or now > tonumber(reset) then
  reset = now + window
  redis.call("HSET", KEYS[1], "count", 1, "reset", reset)
  redis.call("PEXPIRE", KEYS[1], window)
  return {1, 1, reset}
end
reset = tonumber(reset)

local count = tonumber(redis.call("HGET", KEYS[1], "count") or "0")
if count >= max then
  return {0, count, reset}
end

count = redis.call("HINCRBY", KEYS[1], "count", 1)
redis.call("PEXPIRE", KEYS[1], reset - now)
return {1, count, reset}
`)

// Redis is the shared Store backed by redis/go-redis. Counters survive
// restarts and are shared across processes; expiry relies on native TTLs.
type Redis struct {
	client *redis.Client
	clock  clock.Clocker
}

// NewRedis constructs a Redis store.
func NewRedis(client *redis.Client, c clock.Clocker) *Redis {
	if c == nil {
		c = clock.New()
	}

	return &Redis{client: client, clock: c}
}

// Allow applies the fixed-window check for key via the Lua script.
func (r *Redis) Allow(ctx context.Context, key string, p Policy) (Result, error) {
	now := r.clock.Now()

	raw, err := allowScript.Run(ctx, r.client,
		[]string{keyPrefix + key},
		p.MaxRequests,
		p.Window.Milliseconds(),
		now.UnixMilli(),
	).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: redis script: %w", err)
	}
	if len(raw) != 3 {
		return Result{}, fmt.Errorf("ratelimit: redis script returned %d values", len(raw))
	}

	allowed, okA := raw[0].(int64)
	count, okC := raw[1].(int64)
	reset, okR := raw[2].(int64)
	if !okA || !okC || !okR {
		return Result{}, fmt.Errorf("ratelimit: redis script returned unexpected types %T %T %T", raw[0], raw[1], raw[2])
	}

	remaining := p.MaxRequests - int(count)
	if remaining < 0 || allowed == 0 {
		remaining = 0
	}

	return Result{
		Allowed:   allowed == 1,
		Remaining: remaining,
		ResetTime: time.UnixMilli(reset),
	}, nil
}

// Close is a no-op; the Redis client is owned by the application.
func (r *Redis) Close() error {
	return nil
}
