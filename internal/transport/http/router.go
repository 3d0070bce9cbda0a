// Package httptransport wires the gin engine serving the interview backend.
package httptransport

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"interview-server-go/internal/platform/config"
)

// Options configures the HTTP router builder.
type Options struct {
	Settings config.Settings
	Logger   zerolog.Logger
}

// Router bundles the gin engine with the route group handlers attach to.
type Router struct {
	Engine *gin.Engine
}

// Build constructs a gin engine pre-configured with recovery, request ids,
// access logging and CORS.
func Build(opts Options) *Router {
	if opts.Settings.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(loggingMiddleware(opts.Logger))

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     opts.Settings.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-RateLimit-Backend"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if opts.Settings.StaticDir != "" {
		engine.Use(static.Serve("/", static.LocalFile(opts.Settings.StaticDir, true)))
	}

	return &Router{Engine: engine}
}

const requestIDKey = "request_id"

// requestIDMiddleware tags every request with a short id, echoed back in the
// X-Request-ID header and attached to access logs.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()[:12]
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestID returns the id assigned by the middleware, empty when unset.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func loggingMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", RequestID(c)).
			Msg("http request")
	}
}
