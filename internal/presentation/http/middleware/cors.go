package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hearsaylabs/revuloop-go/pkg/config"
)

// CORSMiddleware provides CORS configuration for the dashboard front-end.
// The Vite dev server origins are allowed by default; production origins
// come in through CORS_EXTRA_ORIGIN.
func CORSMiddleware() gin.HandlerFunc {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:5174",
		"http://[::1]:5173", // IPv6 localhost
		"http://[::1]:5174", // IPv6 localhost
	}
	if config.CORSExtraOrigin != "" {
		origins = append(origins, config.CORSExtraOrigin)
	}

	corsConfig := cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Requested-With",
		},
		AllowCredentials: true,
		ExposeHeaders: []string{
			"Content-Type",
		},
	}

	return cors.New(corsConfig)
}
