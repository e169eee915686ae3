package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/backend/config"
)

// SetupRouter creates and configures the Gin router. metricsHandler serves
// the prometheus exposition endpoint; pass nil to disable it.
func SetupRouter(cfg *config.Config, handler *Handler, metricsHandler http.Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerClient, cfg.RateLimit.Burst))
	if handler.collector != nil {
		router.Use(MetricsMiddleware(handler.collector))
	}

	router.GET("/health", handler.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/classify", handler.Classify)
		v1.GET("/categories", handler.Categories)
		v1.GET("/catalog/summary", handler.CatalogSummary)
		v1.GET("/suppliers", handler.Suppliers)
		v1.GET("/anomalies", handler.Anomalies)

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.ProductDetail)
			products.GET("/:id/summary", handler.ProductSummary)
			products.GET("/:id/savings", handler.ProductSavings)
			products.POST("/:id/recommendation", handler.Recommend)
		}

		portfolio := v1.Group("/portfolio")
		{
			portfolio.GET("/overview", handler.PortfolioOverview)
			portfolio.GET("/concentration", handler.PortfolioConcentration)
			portfolio.GET("/competitiveness", handler.PortfolioCompetitiveness)
			portfolio.GET("/strategic", handler.PortfolioStrategic)
			portfolio.GET("/savings", handler.PortfolioSavings)
		}
	}

	return router
}
