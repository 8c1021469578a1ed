// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hearsaylabs/revuloop-go/internal/application/container"
	"github.com/hearsaylabs/revuloop-go/internal/presentation/http/handlers"
	"github.com/hearsaylabs/revuloop-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	webhookHandlers := handlers.NewWebhookHandlers(container.DialogueService, container.Logger, container.PerfTracker)
	reviewHandlers := handlers.NewReviewHandlers(container.ReviewService, container.Logger, container.PerfTracker)
	healthHandlers := handlers.NewHealthHandlers(container.DBService, container.Logger, container.PerfTracker)

	// Service health
	r.GET("/health", healthHandlers.GetHealth)

	// Inbound messaging provider callbacks
	webhook := r.Group("/webhook")
	{
		webhook.POST("/whatsapp", webhookHandlers.PostWhatsApp)
	}

	// Review API routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/reviews", reviewHandlers.GetReviews)
		v1.POST("/reviews", reviewHandlers.PostReview)
		v1.GET("/stats", healthHandlers.GetStats)
	}

	return r
}
