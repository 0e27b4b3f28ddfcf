// Package routes maps the v1 URL space onto handlers.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nocdn/transcriptions-ssr/internal/api/v1/handlers"
	"github.com/nocdn/transcriptions-ssr/internal/api/v1/services"
)

// ServiceContainer holds the services needed by the v1 handlers.
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
}

// RegisterRoutes registers all v1 API routes.
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Transcribe)
		transcriptions.GET("", transcriptionHandler.List)
		transcriptions.DELETE("/:id", transcriptionHandler.Delete)
	}
}
