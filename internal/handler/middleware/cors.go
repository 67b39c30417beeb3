package middleware

import (
	"log/slog"

	"envelope-ledger/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware exposes the Idempotency-Key and Location headers the
// reservation endpoints rely on. With no allowed origins, cross-origin
// requests get no CORS headers at all.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowOrigins) == 0 {
		slog.Warn("CORS disabled: no allowed origins configured")
		return func(c *gin.Context) { c.Next() }
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_headers", cfg.AllowHeaders)
	return cors.New(corsCfg)
}
