package repository

import (
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/postgres"
	repo "github.com/Flexibelstudio/gym-screen-sub002/internal/repository/postgres"
)

// Repositories bundles the persistence interfaces the services need
type Repositories struct {
	Organization organization.Repository
	Pricing      pricing.Repository
}

// NewRepositories wires all postgres repositories from one DB client
func NewRepositories(db *postgres.DB, logger *logger.Logger) Repositories {
	return Repositories{
		Organization: repo.NewOrganizationRepository(db, logger),
		Pricing:      repo.NewPricingRepository(db, logger),
	}
}
