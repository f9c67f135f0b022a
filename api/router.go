// Package api wires the HTTP surface the messaging front-end talks to.
package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clipfetch/api/handlers"
	"clipfetch/api/middleware"
	"clipfetch/internal/app"
	"clipfetch/internal/domain"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	baseCtx context.Context,
	manager *app.DownloadManager,
	repo domain.DownloadRepository,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	healthHandler := handlers.NewHealthHandler(repo)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		downloadHandler := handlers.NewDownloadHandler(baseCtx, manager, repo, log)
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadHandler.AddDownload)
			downloads.GET("", downloadHandler.ListDownloads)
			downloads.GET("/stats", downloadHandler.GetStats)
			downloads.GET("/:id", downloadHandler.GetDownload)
			downloads.DELETE("/:id/artifact", downloadHandler.ConsumeArtifact)
		}
	}

	return router
}
