package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	platformerrors "interview-server-go/internal/platform/errors"
)

const probeTimeout = time.Second

type redisLimiter struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int
	now    func() time.Time
}

// NewRedis constructs the distributed limiter. Window state lives in one
// sorted set per identity, scored by the request time in seconds.
func NewRedis(cfg Config) (Limiter, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		return nil, platformerrors.New(platformerrors.KindConfig, "ratelimit:redis", "redis url required")
	}
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindConfig, "ratelimit:redis", "invalid redis url", err)
	}
	opts.DialTimeout = probeTimeout
	opts.ReadTimeout = probeTimeout
	opts.WriteTimeout = probeTimeout
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "ratelimit:redis", "redis ping failed", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "tts:rl:"
	}
	return &redisLimiter{
		client: client,
		prefix: prefix,
		window: cfg.Window,
		max:    cfg.Max,
		now:    time.Now,
	}, nil
}

func (l *redisLimiter) Check(ctx context.Context, identity string) (Result, error) {
	now := l.now()
	score := float64(now.UnixNano()) / float64(time.Second)
	member := strconv.FormatInt(now.UnixNano(), 10)
	key := l.prefix + identity
	windowSec := l.window.Seconds()

	// Prune, record and count in one round trip. The current attempt is
	// removed again below when the window turns out to be full, so a rejected
	// request does not extend the caller's lockout.
	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatFloat(score-windowSec, 'f', -1, 64))
	pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: member})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	count := int(card.Val())
	if count > l.max {
		_ = l.client.ZRem(ctx, key, member).Err()
		return Result{
			Allowed:      false,
			Limit:        l.max,
			Remaining:    0,
			ResetSeconds: l.resetSeconds(ctx, key, now),
			Backend:      DriverRedis,
		}, nil
	}

	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:      true,
		Limit:        l.max,
		Remaining:    remaining,
		ResetSeconds: l.resetSeconds(ctx, key, now),
		Backend:      DriverRedis,
	}, nil
}

func (l *redisLimiter) resetSeconds(ctx context.Context, key string, now time.Time) int {
	oldest, err := l.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		return int(l.window / time.Second)
	}
	oldestAt := time.Unix(0, int64(oldest[0].Score*float64(time.Second)))
	reset := int(oldestAt.Add(l.window).Sub(now) / time.Second)
	if reset < 0 {
		reset = 0
	}
	return reset
}

func (l *redisLimiter) Limits() (int, time.Duration) {
	return l.max, l.window
}

func (l *redisLimiter) Backend() string {
	return DriverRedis
}

func (l *redisLimiter) Close() error {
	return l.client.Close()
}
