package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	platformerrors "interview-server-go/internal/platform/errors"
)

// probeTimeout bounds the connection check so an unreachable Redis converts
// into a fast fallback instead of a hung request path.
const probeTimeout = time.Second

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis constructs the distributed backend. The connection is verified with
// a bounded ping; callers decide whether a failure is fatal or a fallback.
func NewRedis(cfg Config) (Store, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		return nil, platformerrors.New(platformerrors.KindConfig, "cache:redis", "redis url required")
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindConfig, "cache:redis", "invalid redis url", err)
	}
	opts.DialTimeout = probeTimeout
	opts.ReadTimeout = probeTimeout
	opts.WriteTimeout = probeTimeout
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "cache:redis", "redis ping failed", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "tts:cache:"
	}
	return &redisStore{client: client, prefix: prefix}, nil
}

func (s *redisStore) key(k string) string {
	return s.prefix + k
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (s *redisStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), payload, ttl).Err()
}

func (s *redisStore) Len(ctx context.Context) (int, error) {
	var cursor uint64
	total := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}
		total += len(keys)
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}

func (s *redisStore) Backend() string {
	return DriverRedis
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
