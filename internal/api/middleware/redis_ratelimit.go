package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lunchly/internal/config"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "lunchly:ratelimit:"

type windowCounter interface {
	// Increment bumps key and returns its count within the current window.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisWindowCounter struct {
	client *redis.Client
	logger *slog.Logger
}

func (c *redisWindowCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit pipeline: %w", err)
	}

	count, err := incrCmd.Result()
	if err != nil {
		return 0, fmt.Errorf("rate limit INCR: %w", err)
	}

	// A negative TTL means the key was just created or lost its expiry.
	if ttl, err := ttlCmd.Result(); err != nil || ttl < 0 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			c.logger.ErrorContext(ctx, "Failed to set rate limit key expiry", "key", key, "error", err)
		}
	}

	return count, nil
}

// RedisRateLimiterMiddleware shares a fixed one-second window across
// instances through Redis. It lets requests through when Redis is unavailable.
type RedisRateLimiterMiddleware struct {
	counter windowCounter
	cfg     config.RateLimitConfig
	logger  *slog.Logger
	window  time.Duration
	limit   int64
}

func NewRedisRateLimiterMiddleware(cfg config.RateLimitConfig, client *redis.Client, logger *slog.Logger) *RedisRateLimiterMiddleware {
	logger = logger.With("component", "RedisRateLimiter")
	if cfg.Enabled && client == nil {
		logger.Warn("Rate limiting enabled but no Redis client provided; disabling")
		cfg.Enabled = false
	}

	var counter windowCounter
	if client != nil {
		counter = &redisWindowCounter{client: client, logger: logger}
	}
	return newRedisRateLimiter(cfg, counter, logger)
}

func newRedisRateLimiter(cfg config.RateLimitConfig, counter windowCounter, logger *slog.Logger) *RedisRateLimiterMiddleware {
	limit := int64(cfg.RPS)
	if limit < 1 {
		limit = 1
	}
	if cfg.Enabled {
		logger.Info("Redis rate limiter configured", "limit", limit, "window", time.Second)
	}
	return &RedisRateLimiterMiddleware{
		counter: counter,
		cfg:     cfg,
		logger:  logger,
		window:  time.Second,
		limit:   limit,
	}
}

func (rl *RedisRateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled && rl.counter != nil
}

func (rl *RedisRateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientIP(r)
		if ip == unknownClientIP {
			rl.logger.ErrorContext(ctx, "Blocking request with unknown client IP", "remoteAddr", r.RemoteAddr)
			writeJSONError(w, http.StatusForbidden, "Forbidden")
			return
		}

		key := rateLimitKeyPrefix + ip
		count, err := rl.counter.Increment(ctx, key, rl.window)
		if err != nil {
			rl.logger.ErrorContext(ctx, "Rate limit check failed, allowing request", "ip", ip, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			rl.logger.WarnContext(ctx, "Rate limit exceeded", "ip", ip, "count", count, "limit", rl.limit)
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeJSONError(w, http.StatusTooManyRequests,
				fmt.Sprintf("Rate limit exceeded. Limit is %d requests per %v.", rl.limit, rl.window))
			return
		}

		next.ServeHTTP(w, r)
	})
}
