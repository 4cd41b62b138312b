package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linuxgeek/simulado/internal/config"
	"github.com/linuxgeek/simulado/internal/handler"
	"github.com/linuxgeek/simulado/internal/middleware"
	"github.com/linuxgeek/simulado/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Progress *handler.ProgressHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Every response carries a request ID in its metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Catalog (public, read-only) ───────────────────────────────────
	catalog := router.Group("/api/v1/simulados")
	{
		catalog.GET("", handlers.Catalog.ListSimulados)
		catalog.GET("/:slug/exams", handlers.Catalog.GetExamOptions)
		catalog.GET("/:slug/questions", handlers.Catalog.GetQuestions)
	}

	// ─── Progress (bearer token, per-user) ─────────────────────────────
	progress := router.Group("/api/v1/progress")
	progress.Use(middleware.RequireUser(cfg.JWTSecret))
	{
		progress.POST("/sessions", handlers.Progress.SaveSession)
		progress.GET("/sessions", handlers.Progress.ListSessions)
	}

	return router
}
