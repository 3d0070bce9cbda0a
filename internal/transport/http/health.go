package httptransport

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"interview-server-go/internal/domain/tts/cache"
	"interview-server-go/internal/domain/tts/ratelimit"
	"interview-server-go/internal/platform/config"
)

// HealthHandler reports service readiness, including a read-only view into
// the cache and whether synthesis is enabled at all.
type HealthHandler struct {
	settings config.Settings
	store    cache.Store
	limiter  ratelimit.Limiter
	logger   zerolog.Logger
}

// NewHealthHandler creates the readiness handler.
func NewHealthHandler(settings config.Settings, store cache.Store, limiter ratelimit.Limiter, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{settings: settings, store: store, limiter: limiter, logger: logger}
}

// RegisterRoutes attaches the health routes.
func (h *HealthHandler) RegisterRoutes(router *Router) {
	router.Engine.GET("/healthz", h.Health)
}

// Health returns readiness details. Cache counting failures degrade to zero
// rather than failing the probe; an unreadable cache is not an outage.
func (h *HealthHandler) Health(c *gin.Context) {
	items, err := h.store.Len(c.Request.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("cache size lookup failed")
		items = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"app":                h.settings.AppName,
		"version":            h.settings.AppVersion,
		"tts_enabled":        os.Getenv("ELEVENLABS_API_KEY") != "",
		"cache_backend":      h.store.Backend(),
		"cache_items":        items,
		"rate_limit_backend": h.limiter.Backend(),
	})
}
