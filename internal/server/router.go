// Package server wires the HTTP surface: routing, middleware, and the
// document handlers.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with tracing, logging, and recovery
// middleware plus all document routes.
func NewRouter(h *DocumentHandler, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(RequestID())
	router.Use(Recovery(log))
	router.Use(RequestLogger(log))

	router.GET("/healthz", h.Health)
	router.POST("/process", h.ProcessPath)

	api := router.Group("/api/documents")
	{
		api.POST("/upload", h.Upload)
		api.POST("/classify", h.Classify)
		api.POST("/extract", h.Extract)
		api.POST("/process", h.Process)
		api.GET("/recent", h.Recent)
		api.GET("/export", h.Export)
		api.GET("/:id", h.Get)
	}

	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/stats", h.DashboardStats)
		dashboard.GET("/accuracy", h.DashboardAccuracy)
		dashboard.GET("/extracted-metrics", h.DashboardMetrics)
	}

	return router
}
