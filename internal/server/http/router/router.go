package router

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/umaru-jpg/luvyn/internal/config"
	"github.com/umaru-jpg/luvyn/internal/metrics"
	"github.com/umaru-jpg/luvyn/internal/server/http/dto"
	"github.com/umaru-jpg/luvyn/internal/server/http/handlers"
	"github.com/umaru-jpg/luvyn/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", slog.Any("panic", recovered), slog.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Internal server error"))
	}))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RequestMetrics(m))
	engine.Use(middleware.DecompressRequest(middleware.MaxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	authHandler := handlers.NewAuthHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	api := engine.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/health", healthHandler.Check)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)

	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		engine.NoRoute(serveStatic(cfg.StaticDir))
		logger.Info("serving storefront assets", slog.String("dir", cfg.StaticDir))
	}

	return engine
}
