package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shopapi/internal/config"

	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error)
}

type redisRepository struct {
	client *redis.Client
	cfg    *config.Config
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.Redis.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg *config.Config) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg}
}

// CheckLoginRateLimit records one attempt in a sliding window per email.
// Returns isAllowed, attempts left, seconds to wait, error.
func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	key := fmt.Sprintf("login_attempts:%s", email)

	now := time.Now().Unix()
	windowStart := now - int64(r.cfg.RateLimit.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.RateLimit.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	remaining := r.cfg.RateLimit.MaxAttempts - attempts

	if attempts >= r.cfg.RateLimit.MaxAttempts {
		oldest, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
			Key: key, Start: 0, Stop: 0,
		}).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, int(r.cfg.RateLimit.WindowSize.Seconds()), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		oldestTimestamp := int64(oldest[0].Score)
		retryAfter := max((oldestTimestamp+int64(r.cfg.RateLimit.WindowSize.Seconds()))-now, 0)

		slog.Warn("Login rate limit exceeded", slog.String("email", email), slog.Int64("attempts", attempts))

		return false, 0, int(retryAfter), nil
	}

	return true, int(remaining), 0, nil
}
