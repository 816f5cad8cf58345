package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Kamar-Folarin/portfolio-sync/internal/logging"
)

// @title Portfolio Sync API
// @version 1.0
// @description Synced GitHub activity, a recent activity summary and a real-time hub for the portfolio site
// @contact.name API Support
// @contact.url http://github.com/Kamar-Folarin
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /
// @schemes http https

// SetupRouter configures the API routes
func SetupRouter(h *Handler, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(logger))

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", h.ListRepositories)
	r.GET("/personal-summary", h.GetPersonalSummary)
	r.POST("/regenerate-summary", h.RegenerateSummary)

	notify := r.Group("/notify")
	{
		notify.POST("/commit-data-updated", h.NotifyCommitDataUpdated)
		notify.POST("/personal-summary-updated", h.NotifyPersonalSummaryUpdated)
	}

	health := r.Group("/health")
	{
		health.GET("", h.Health)
		health.GET("/ollama", h.OllamaHealth)
	}

	sync := r.Group("/sync")
	{
		sync.GET("", h.GetSyncStatus)
		sync.POST("", h.TriggerSync)
	}

	r.GET("/portfolioHub", h.Stream)

	return r
}
