package service

import (
	"context"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/api/dto"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/cache"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
)

const pricingCacheKey = cache.PrefixPricing + "current"

// PricingService manages the editable pricing table
type PricingService interface {
	GetPricing(ctx context.Context) (*pricing.Pricing, error)
	UpdatePricing(ctx context.Context, req dto.UpdatePricingRequest) (*dto.PricingResponse, error)
}

type pricingService struct {
	ServiceParams
}

// NewPricingService creates a new pricing service
func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

// GetPricing returns the stored pricing table, falling back to the
// configured bootstrap prices when none has been saved yet.
func (s *pricingService) GetPricing(ctx context.Context) (*pricing.Pricing, error) {
	if cached, found := s.Cache.Get(ctx, pricingCacheKey); found {
		if p, ok := cached.(*pricing.Pricing); ok {
			return p, nil
		}
	}

	p, err := s.PricingRepo.Get(ctx)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Debugw("no stored pricing, using configured defaults")
			p = &pricing.Pricing{
				FirstScreenPrice:      s.Config.Billing.FirstScreenPrice,
				AdditionalScreenPrice: s.Config.Billing.AdditionalScreenPrice,
				Currency:              s.Config.Billing.Currency,
			}
		} else {
			return nil, err
		}
	}

	s.Cache.Set(ctx, pricingCacheKey, p, cache.DefaultExpiration)
	return p, nil
}

// UpdatePricing replaces the pricing table and busts the cache
func (s *pricingService) UpdatePricing(ctx context.Context, req dto.UpdatePricingRequest) (*dto.PricingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPricing()
	if err := s.PricingRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, pricingCacheKey)

	s.Logger.Infow("pricing table updated",
		"first_screen_price", p.FirstScreenPrice.String(),
		"additional_screen_price", p.AdditionalScreenPrice.String(),
		"currency", p.Currency,
	)
	return dto.NewPricingResponse(p), nil
}
