package service

import (
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/cache"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/config"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/postgres"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/repository"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     *postgres.DB
	Cache  cache.Cache

	// Repositories
	OrganizationRepo organization.Repository
	PricingRepo      pricing.Repository

	// Now supplies the clock; tests inject a fixed instant. Nil means
	// time.Now.
	Now func() time.Time
}

func (p ServiceParams) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

// NewServiceParams wires common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	cache cache.Cache,
	repos repository.Repositories,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               db,
		Cache:            cache,
		OrganizationRepo: repos.Organization,
		PricingRepo:      repos.Pricing,
	}
}
