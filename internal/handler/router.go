package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"envelope-ledger/internal/domain/user"
	"envelope-ledger/internal/handler/api"
	"envelope-ledger/internal/handler/middleware"
	"envelope-ledger/internal/pkg/config"
	"envelope-ledger/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	reservationHandler *api.ReservationHandler,
	capacityHandler *api.CapacityHandler,
	authMiddleware *middleware.AuthMiddleware,
	httpMetrics *metrics.HTTPMetrics,
) {
	setupMiddleware(engine, cfg, logger, httpMetrics)
	setupRoutes(engine, cfg, reservationHandler, capacityHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, httpMetrics *metrics.HTTPMetrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	if httpMetrics != nil {
		engine.Use(middleware.Metrics(httpMetrics))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	reservationHandler *api.ReservationHandler,
	capacityHandler *api.CapacityHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled {
		engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		addRoutes(apiGroup.Group("/reservations"), []route{
			{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
			{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
			{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.CancelReservation},
		})

		addRoutes(apiGroup.Group("/partners"), []route{
			{Method: http.MethodGet, Path: "/:id/capacity", Handler: capacityHandler.GetCapacity},
			{Method: http.MethodGet, Path: "/:id/reservations", Handler: reservationHandler.ListByPartner},
		})

		addRoutes(apiGroup.Group("/products"), []route{
			{Method: http.MethodGet, Path: "/:id/reservations", Handler: reservationHandler.ListByProduct},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPut, Path: "/partners/:id/envelope", Handler: capacityHandler.ResizeEnvelope},
			{Method: http.MethodGet, Path: "/partners/:id/capacity/verify", Handler: capacityHandler.VerifyCapacity},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
