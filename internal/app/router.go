// internal/app/router.go
package app

import (
	"net/http"

	_ "client-bff/internal/docs"
	adminHandler "client-bff/internal/handlers/admin"
	healthHandler "client-bff/internal/handlers/health"
	searchHandler "client-bff/internal/handlers/search"
	"client-bff/internal/middleware"
	"client-bff/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	SearchHandler  *searchHandler.SearchHandler
	HealthHandler  *healthHandler.HealthHandler
	AuditHandler   *adminHandler.AuditHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	// Every route below is gated except middleware.PublicPaths
	r.Use(h.AuthMiddleware.Protected()...)

	r.NoRoute(func(c *gin.Context) {
		response.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})

	// ==================== Public ====================
	r.GET("/health", h.HealthHandler.Health)
	r.GET("/ready", h.HealthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// ==================== Client Search ====================
	search := api.Group("/client/search")
	if h.RateLimit != nil {
		search.Use(h.RateLimit)
	}
	{
		search.POST("/vehicles", h.SearchHandler.SearchVehicles)
		search.POST("/advanced/vehicles", h.SearchHandler.AdvancedSearchVehicles)
		search.POST("/advanced/vehicles/live", h.SearchHandler.LiveSearchVehicles)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		admin.GET("/search/audit", h.AuditHandler.ListSearchAudit)
	}

	logger.Debug("routes registered", zap.Int("count", len(r.Routes())))
}
