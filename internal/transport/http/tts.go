package httptransport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"interview-server-go/internal/domain/tts"
	platformerrors "interview-server-go/internal/platform/errors"
)

// TTSHandler serves the preamble narration endpoint.
type TTSHandler struct {
	service *tts.Service
	logger  zerolog.Logger
}

// NewTTSHandler creates the preamble handler.
func NewTTSHandler(service *tts.Service, logger zerolog.Logger) *TTSHandler {
	return &TTSHandler{service: service, logger: logger}
}

// RegisterRoutes attaches the tts routes.
func (h *TTSHandler) RegisterRoutes(router *Router) {
	router.Engine.GET("/tts/preamble", h.Preamble)
}

// Preamble returns narration audio generated on demand. voice_id and model_id
// query parameters are accepted for compatibility and silently discarded; the
// server's voice configuration always wins.
func (h *TTSHandler) Preamble(c *gin.Context) {
	req := tts.PreambleRequest{
		Identity: c.ClientIP(),
		Force:    parseBool(c.Query("force")),
		Name:     c.Query("name"),
		Script:   c.Query("script"),
	}

	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"stability", &req.Stability},
		{"similarity_boost", &req.SimilarityBoost},
		{"style", &req.Style},
	} {
		value, ok, err := parseUnitFloat(c.Query(p.name))
		if err != nil {
			RespondDetail(c, http.StatusBadRequest, fmt.Sprintf("Invalid value for %s", p.name))
			return
		}
		if ok {
			*p.dst = &value
		}
	}
	if raw := c.Query("use_speaker_boost"); raw != "" {
		boost := parseBool(raw)
		req.UseSpeakerBoost = &boost
	}

	result, err := h.service.Preamble(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("X-Cache", result.Cache)
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Rate.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Rate.Remaining))
	c.Header("X-RateLimit-Reset", strconv.Itoa(result.Rate.ResetSeconds))
	c.Header("X-RateLimit-Backend", result.Rate.Backend)
	c.Data(http.StatusOK, "audio/mpeg", result.Audio)
}

func (h *TTSHandler) respondError(c *gin.Context, err error) {
	var upstream *tts.UpstreamError
	switch {
	case errors.Is(err, tts.ErrRateLimited):
		RespondDetail(c, http.StatusTooManyRequests, "Rate limit exceeded for TTS preamble")
	case errors.Is(err, tts.ErrDisabled):
		RespondDetail(c, http.StatusServiceUnavailable, "TTS disabled")
	case errors.As(err, &upstream):
		h.logger.Warn().Int("upstream_status", upstream.StatusCode).Str("request_id", RequestID(c)).Msg("tts preamble upstream error")
		RespondDetail(c, http.StatusBadGateway, fmt.Sprintf("ElevenLabs error %d", upstream.StatusCode))
	case platformerrors.IsKind(err, platformerrors.KindUpstream):
		h.logger.Error().Err(err).Str("request_id", RequestID(c)).Msg("tts provider unreachable")
		RespondDetail(c, http.StatusInternalServerError, fmt.Sprintf("TTS failure: %v", err))
	default:
		h.logger.Error().Err(err).Str("request_id", RequestID(c)).Msg("tts preamble unexpected failure")
		RespondDetail(c, http.StatusInternalServerError, fmt.Sprintf("TTS failure: %v", err))
	}
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// parseUnitFloat parses an optional query float constrained to [0, 1].
func parseUnitFloat(raw string) (float64, bool, error) {
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	if value < 0 || value > 1 {
		return 0, false, fmt.Errorf("value %g out of range", value)
	}
	return value, true, nil
}
