// Package observability emits best-effort metric datapoints through the
// process logger. Emission stays a no-op until Setup enables it, so callers
// can record unconditionally.
package observability

import (
	"sync"

	"github.com/rs/zerolog"
)

// Counter series recorded by the preamble pipeline.
const (
	CounterCacheHits       = "tts_cache_hits_total"
	CounterCacheMisses     = "tts_cache_misses_total"
	CounterRateLimitBlocks = "tts_rate_limit_blocks_total"
)

// Config captures observability toggles. Future fields (exporter endpoints,
// sample rates) can be added here.
type Config struct {
	Enabled bool
}

var (
	sinkMu sync.RWMutex
	sink   = zerolog.Nop()
)

// Setup wires metric emission to the given logger. Before Setup runs, or when
// cfg.Enabled is false, RecordMetric discards every datapoint.
func Setup(cfg Config, logger zerolog.Logger) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if cfg.Enabled {
		sink = logger
	} else {
		sink = zerolog.Nop()
	}
}

// RecordMetric emits one metric datapoint via the configured logger.
func RecordMetric(name string, value float64, labels map[string]string) {
	sinkMu.RLock()
	logger := sink
	sinkMu.RUnlock()

	event := logger.Debug().Str("metric", name).Float64("value", value)
	for k, v := range labels {
		event = event.Str(k, v)
	}
	event.Msg("obs metric")
}
