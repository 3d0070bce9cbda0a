package cache

import (
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	platformerrors "interview-server-go/internal/platform/errors"
)

// New creates a cache store for an explicitly selected driver.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverRedis:
		return NewRedis(cfg)
	case DriverSQLite:
		if cfg.SQLite == nil || cfg.SQLite.DSN == "" {
			return nil, platformerrors.New(platformerrors.KindConfig, "cache:new", "sqlite driver requires dsn")
		}
		db, err := gorm.Open(sqlite.Open(cfg.SQLite.DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindStorage, "cache:new", "open sqlite", err)
		}
		return NewSQLite(db)
	default:
		return nil, platformerrors.New(platformerrors.KindConfig, "cache:new", "unsupported cache driver: "+cfg.Driver)
	}
}

// Select picks the backend the way the request path expects it: try Redis once
// when configured, fall back to memory for the rest of the process lifetime on
// any failure. There is no per-request retry; an unreachable Redis must not
// slow down synthesis.
func Select(cfg Config, logger zerolog.Logger) Store {
	if cfg.Driver != "" && cfg.Driver != DriverRedis {
		store, err := New(cfg)
		if err != nil {
			logger.Warn().Err(err).Str("driver", cfg.Driver).Msg("cache driver unavailable, using memory")
			return NewMemory()
		}
		return store
	}

	if cfg.Redis != nil && cfg.Redis.URL != "" {
		store, err := NewRedis(cfg)
		if err == nil {
			logger.Info().Str("backend", DriverRedis).Msg("tts cache backend selected")
			return store
		}
		logger.Warn().Err(err).Msg("redis cache unreachable, falling back to memory")
	}
	return NewMemory()
}
