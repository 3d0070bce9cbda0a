// Package tts implements the preamble narration subsystem: server-enforced
// synthesis configuration, deterministic cache keys, and the orchestration of
// rate limiting, caching and upstream synthesis behind the preamble endpoint.
package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"interview-server-go/internal/domain/tts/cache"
	"interview-server-go/internal/domain/tts/ratelimit"
	"interview-server-go/internal/platform/observability"
)

// ErrRateLimited reports that the client identity exhausted its window quota.
var ErrRateLimited = errors.New("rate limit exceeded for TTS preamble")

// ErrDisabled reports that no provider API key is configured.
var ErrDisabled = errors.New("TTS disabled")

// UpstreamError reports a non-200 response from the synthesis provider.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ElevenLabs error %d", e.StatusCode)
}

// SynthesisRequest is the effective, server-resolved synthesis call.
type SynthesisRequest struct {
	APIKey  string
	VoiceID string
	ModelID string
	Script  string
	Voice   VoiceSettings
}

// Synthesizer turns an effective synthesis request into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error)
}

// PreambleRequest carries the client-supplied inputs for one preamble call.
// Client voice and model identifiers are deliberately absent: they are
// accepted by the transport layer and dropped there, because voice identity is
// a brand decision the server owns.
type PreambleRequest struct {
	// Identity is the rate-limit identity, derived from the client address.
	Identity string
	// Force bypasses the cache lookup and re-synthesizes.
	Force bool

	Name   string
	Script string

	Stability       *float64
	SimilarityBoost *float64
	Style           *float64
	UseSpeakerBoost *bool
}

// CacheState values surfaced in the X-Cache diagnostic header.
const (
	CacheHit  = "HIT"
	CacheMiss = "MISS"
)

// PreambleResult is a successful synthesis response.
type PreambleResult struct {
	Audio []byte
	Cache string
	Rate  ratelimit.Result
}

// Service orchestrates the preamble pipeline.
type Service struct {
	resolver *Resolver
	cache    cache.Store
	limiter  ratelimit.Limiter
	synth    Synthesizer
	ttl      time.Duration
	logger   zerolog.Logger
	flight   singleflight.Group
}

// NewService wires the orchestrator. ttl governs how long synthesized audio
// stays cached.
func NewService(resolver *Resolver, store cache.Store, limiter ratelimit.Limiter, synth Synthesizer, ttl time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		resolver: resolver,
		cache:    store,
		limiter:  limiter,
		synth:    synth,
		ttl:      ttl,
		logger:   logger,
	}
}

// Preamble runs the full pipeline: rate check, parameter resolution, cache
// lookup, synthesis on miss, store, respond.
//
// The rate limit is consumed before the disabled check, so a misconfigured
// service still burns quota. That matches the behavior the product shipped
// with and keeps probing a disabled endpoint from being free.
func (s *Service) Preamble(ctx context.Context, req PreambleRequest) (PreambleResult, error) {
	rate, err := s.limiter.Check(ctx, req.Identity)
	if err != nil {
		// A limiter backend hiccup never blocks synthesis; it only costs
		// accuracy of a soft quota. The degraded result reads as the first
		// request of a fresh window so clients still see the real limits.
		s.logger.Warn().Err(err).Str("backend", s.limiter.Backend()).Msg("rate limiter check failed, admitting request")
		max, window := s.limiter.Limits()
		remaining := max - 1
		if remaining < 0 {
			remaining = 0
		}
		rate = ratelimit.Result{
			Allowed:      true,
			Limit:        max,
			Remaining:    remaining,
			ResetSeconds: int(window / time.Second),
			Backend:      s.limiter.Backend(),
		}
	}
	if !rate.Allowed {
		observability.RecordMetric(observability.CounterRateLimitBlocks, 1, map[string]string{"backend": rate.Backend})
		return PreambleResult{Rate: rate}, ErrRateLimited
	}

	defaults := s.resolver.Defaults()
	if defaults.APIKey == "" {
		return PreambleResult{Rate: rate}, ErrDisabled
	}

	synthReq := s.buildRequest(req, defaults)
	key := DeriveKey(synthReq.Script, synthReq.VoiceID, synthReq.ModelID, synthReq.Voice)

	if !req.Force {
		payload, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			// Cache trouble degrades to a miss.
			s.logger.Warn().Err(err).Str("backend", s.cache.Backend()).Msg("tts cache read failed")
		}
		if ok {
			observability.RecordMetric(observability.CounterCacheHits, 1, map[string]string{"backend": s.cache.Backend()})
			s.logger.Info().Str("cache", CacheHit).Str("backend", s.cache.Backend()).Msg("tts preamble cache hit")
			return PreambleResult{Audio: payload, Cache: CacheHit, Rate: rate}, nil
		}
	}

	audio, err := s.synthesize(ctx, key, synthReq)
	if err != nil {
		return PreambleResult{Rate: rate}, err
	}

	observability.RecordMetric(observability.CounterCacheMisses, 1, map[string]string{"backend": s.cache.Backend()})
	s.logger.Info().
		Str("cache", CacheMiss).
		Str("backend", s.cache.Backend()).
		Int("bytes", len(audio)).
		Msg("tts preamble cache miss")
	return PreambleResult{Audio: audio, Cache: CacheMiss, Rate: rate}, nil
}

// synthesize collapses concurrent identical misses into one provider call and
// stores the result. The upstream context is detached from the client's
// cancellation: a disconnect mid-synthesis still populates the cache, and the
// synthesizer's own timeout stays the hard ceiling.
func (s *Service) synthesize(ctx context.Context, key string, req SynthesisRequest) ([]byte, error) {
	audio, err, _ := s.flight.Do(key, func() (interface{}, error) {
		detached := context.WithoutCancel(ctx)
		payload, err := s.synth.Synthesize(detached, req)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Put(detached, key, payload, s.ttl); err != nil {
			s.logger.Warn().Err(err).Str("backend", s.cache.Backend()).Msg("tts cache write failed")
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return audio.([]byte), nil
}

// buildRequest merges client overrides over server defaults and substitutes
// script placeholders. Voice and model identifiers always come from the
// server.
func (s *Service) buildRequest(req PreambleRequest, defaults Defaults) SynthesisRequest {
	person := strings.TrimSpace(req.Name)
	namePart := ""
	if person != "" {
		namePart = " " + person + ","
	}

	script := defaults.Script
	if req.Script != "" {
		script = req.Script
	}
	replacer := strings.NewReplacer(
		"{name}", person,
		"{name_part}", namePart,
		"{company}", defaults.Company,
		"{product}", defaults.Product,
	)
	effective := replacer.Replace(script)

	voice := defaults.Voice
	if req.Stability != nil {
		voice.Stability = *req.Stability
	}
	if req.SimilarityBoost != nil {
		voice.SimilarityBoost = *req.SimilarityBoost
	}
	if req.Style != nil {
		voice.Style = *req.Style
	}
	if req.UseSpeakerBoost != nil {
		voice.UseSpeakerBoost = *req.UseSpeakerBoost
	}

	return SynthesisRequest{
		APIKey:  defaults.APIKey,
		VoiceID: defaults.VoiceID,
		ModelID: defaults.ModelID,
		Script:  effective,
		Voice:   voice,
	}
}
