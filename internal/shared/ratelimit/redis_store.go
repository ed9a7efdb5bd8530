package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps rate limit state in Redis so the limit holds across
// every running instance of the service.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreOption configures the Redis store.
type RedisStoreOption func(*RedisStore)

// WithRedisPrefix namespaces all keys written by this store.
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed rate limit store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "ratelimit",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RedisStore) Allow(ctx context.Context, key string, config Config) (Result, error) {
	if s == nil || s.client == nil {
		return Result{}, errors.New("ratelimit: redis store is not initialized")
	}

	fullKey := s.prefix + ":" + key

	switch config.Algorithm {
	case AlgorithmSlidingWindow:
		return s.slidingWindow(ctx, fullKey, config)
	case AlgorithmFixedWindow:
		return s.fixedWindow(ctx, fullKey, config)
	default:
		return s.tokenBucket(ctx, fullKey, config)
	}
}

// Each algorithm runs as a single Lua script so the read-modify-write on
// the counter is atomic. Scripts return {allowed, remaining, retry_ms}.

const tokenBucketScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local window = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local data = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(data[1]) or burst
local lastRefill = tonumber(data[2]) or now

local refillRate = limit / window
tokens = math.min(burst, tokens + ((now - lastRefill) * refillRate))

local allowed = 0
local remaining = 0
local retryAfter = 0

if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
	remaining = tokens
else
	retryAfter = (1 - tokens) / refillRate
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', now)
redis.call('PEXPIRE', key, window * 2)

return {allowed, math.floor(remaining), math.floor(retryAfter)}
`

func (s *RedisStore) tokenBucket(ctx context.Context, key string, config Config) (Result, error) {
	windowMs := float64(config.Window.Milliseconds())
	now := float64(time.Now().UnixMilli())

	return s.eval(ctx, tokenBucketScript, key, config, config.Window,
		config.Limit, config.Burst, windowMs, now)
}

const slidingWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
local allowed = 0
local remaining = 0
local retryAfter = 0

if count < limit then
	redis.call('ZADD', key, now, now .. '-' .. math.random())
	allowed = 1
	remaining = limit - count - 1
else
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	if oldest[2] then
		retryAfter = tonumber(oldest[2]) + window - now
		if retryAfter < 0 then retryAfter = 0 end
	end
end

redis.call('PEXPIRE', key, window * 2)

return {allowed, remaining, math.floor(retryAfter)}
`

func (s *RedisStore) slidingWindow(ctx context.Context, key string, config Config) (Result, error) {
	windowMs := config.Window.Milliseconds()
	now := float64(time.Now().UnixMilli())

	return s.eval(ctx, slidingWindowScript, key, config, config.Window,
		config.Limit, windowMs, now)
}

const fixedWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = tonumber(redis.call('INCR', key))
if current == 1 then
	redis.call('PEXPIRE', key, window)
end

local ttl = redis.call('PTTL', key)
local allowed = 0
local remaining = 0
local retryAfter = 0

if current <= limit then
	allowed = 1
	remaining = limit - current
else
	retryAfter = ttl
end

return {allowed, remaining, retryAfter}
`

func (s *RedisStore) fixedWindow(ctx context.Context, key string, config Config) (Result, error) {
	return s.eval(ctx, fixedWindowScript, key, config, config.Window,
		config.Limit, config.Window.Milliseconds())
}

// eval runs a limiter script and decodes its {allowed, remaining, retry_ms}
// reply into a Result.
func (s *RedisStore) eval(ctx context.Context, script, key string, config Config, window time.Duration, args ...interface{}) (Result, error) {
	reply, err := s.client.Eval(ctx, script, []string{key}, args...).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: redis eval failed: %w", err)
	}
	if len(reply) < 3 {
		return Result{}, fmt.Errorf("ratelimit: unexpected script reply length %d", len(reply))
	}

	return Result{
		Allowed:    toInt64(reply[0]) == 1,
		Limit:      config.Limit,
		Remaining:  toInt64(reply[1]),
		ResetAt:    time.Now().Add(window),
		RetryAfter: time.Duration(toInt64(reply[2])) * time.Millisecond,
	}, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return errors.New("ratelimit: redis store is not initialized")
	}
	return s.client.Del(ctx, s.prefix+":"+key).Err()
}

func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
