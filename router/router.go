package router

import (
	"github.com/AquaBuilt/aqua-built-backend/config"
	"github.com/AquaBuilt/aqua-built-backend/handlers"
	"github.com/AquaBuilt/aqua-built-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	ContractHandler *handlers.ContractHandler
	AddendumHandler *handlers.AddendumHandler
	BillingHandler  *handlers.BillingHandler
	HealthHandler   *handlers.HealthHandler
	Logger          *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	// Global Middleware
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(middleware.RecoveryHandler))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus metrics endpoint

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		contractRoutes := v1.Group("/contracts")
		{
			contractRoutes.POST("/extract", deps.ContractHandler.ExtractContract)
		}

		addendumRoutes := v1.Group("/addendums")
		{
			addendumRoutes.POST("/validate", deps.AddendumHandler.ValidateAddendum)
			addendumRoutes.POST("/detect", deps.AddendumHandler.DetectAddendum)
			addendumRoutes.POST("/extract", deps.AddendumHandler.ExtractAddendum)
		}

		orderRoutes := v1.Group("/orders")
		{
			orderRoutes.POST("/invoice-summary", deps.BillingHandler.InvoiceSummary)
		}
	}

	return r
}
