package handlers

import (
	"stegochat-backend/config"
	"stegochat-backend/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes. gatherer may be nil when metrics are disabled.
func NewRouter(cfg *config.Config, m *metrics.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"X-Stego-PSNR", "X-Stego-Message", "X-Stego-Capacity", "X-Stego-Bits", "X-Request-ID", "Content-Disposition"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))
	router.Use(m.Middleware())

	stegoHandler := NewStegoHandler(cfg, m)

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/embed", stegoHandler.EmbedMessage)
			stego.POST("/extract", stegoHandler.ExtractMessage)
			stego.POST("/inspect", stegoHandler.InspectImage)
		}
	}

	if cfg.Metrics.Enabled && gatherer != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return router
}
