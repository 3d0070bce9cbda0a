package ratelimit

import (
	"github.com/rs/zerolog"
)

// Select mirrors the cache backend selection: Redis once when configured,
// memory for the rest of the process lifetime on any failure.
func Select(cfg Config, logger zerolog.Logger) Limiter {
	if cfg.Redis != nil && cfg.Redis.URL != "" {
		limiter, err := NewRedis(cfg)
		if err == nil {
			logger.Info().Str("backend", DriverRedis).Msg("tts rate limiter backend selected")
			return limiter
		}
		logger.Warn().Err(err).Msg("redis rate limiter unreachable, falling back to memory")
	}
	return NewMemory(cfg)
}
