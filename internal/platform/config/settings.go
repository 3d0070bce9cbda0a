// Package config holds process-level settings. Settings are parsed from the
// environment once at startup; knobs the TTS subsystem must be able to pick up
// without a restart are re-read per request by the tts resolver instead.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings captures operational configuration for the interview server.
type Settings struct {
	AppName    string `env:"APP_NAME" envDefault:"EQ Adaptive Interview"`
	AppVersion string `env:"APP_VERSION" envDefault:"0.1.0"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// MetricsEnabled turns on counter emission through the process logger.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"false"`

	// Comma separated list of allowed CORS origins.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`

	// StaticDir serves the built frontend when non-empty.
	StaticDir string `env:"STATIC_DIR"`

	// RedisURL selects the distributed cache/rate-limit backend. Empty means
	// process-local fallback without probing.
	RedisURL string `env:"REDIS_URL"`

	// CacheDriver forces a cache backend ("redis", "memory", "sqlite")
	// instead of the probe-then-fallback default.
	CacheDriver string `env:"TTS_CACHE_DRIVER"`
	CacheDSN    string `env:"TTS_CACHE_DSN" envDefault:"file:tts_cache.db"`

	CacheTTLSeconds int `env:"TTS_PREAMBLE_TTL" envDefault:"21600"`
	RateWindowSec   int `env:"TTS_RATE_WINDOW_SEC" envDefault:"60"`
	RateMax         int `env:"TTS_RATE_MAX" envDefault:"5"`
}

// Load parses Settings from the current environment.
func Load() (Settings, error) {
	s, err := env.ParseAs[Settings]()
	if err != nil {
		return Settings{}, err
	}
	s.AllowedOrigins = trimOrigins(s.AllowedOrigins)
	return s, nil
}

func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
