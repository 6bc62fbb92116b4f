package main

import (
	"context"
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/api"
	v1 "github.com/Flexibelstudio/gym-screen-sub002/internal/api/v1"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/cache"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/config"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/postgres"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/repository"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/service"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Gym Screen Billing API
// @version 1.0
// @description Subscription billing for gym screens
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewRepositories,

			// Services
			service.NewServiceParams,
			service.NewBillingService,
			service.NewPricingService,

			// HTTP surface
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	billingService service.BillingService,
	pricingService service.PricingService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		Billing: v1.NewBillingHandler(billingService, logger),
		Pricing: v1.NewPricingHandler(pricingService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
