package api

import (
	v1 "github.com/Flexibelstudio/gym-screen-sub002/internal/api/v1"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/config"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/rest/middleware"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Billing *v1.BillingHandler
	Pricing *v1.PricingHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeAPI {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.LoggerMiddleware(logger),
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	organizations := router.Group("/organizations")
	{
		organizations.GET("/:id/invoice", handlers.Billing.GetInvoicePreview)
		organizations.POST("/:id/billing", handlers.Billing.MarkBilled)
		organizations.DELETE("/:id/billing", handlers.Billing.UndoBilling)
	}

	pricing := router.Group("/pricing")
	{
		pricing.GET("", handlers.Pricing.GetPricing)
		pricing.PUT("", handlers.Pricing.UpdatePricing)
	}
}
