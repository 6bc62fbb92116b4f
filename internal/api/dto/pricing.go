package dto

import (
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/validator"
	"github.com/shopspring/decimal"
)

// UpdatePricingRequest replaces the pricing table
type UpdatePricingRequest struct {
	FirstScreenPrice      decimal.Decimal `json:"first_screen_price" validate:"required"`
	AdditionalScreenPrice decimal.Decimal `json:"additional_screen_price" validate:"required"`
	Currency              string          `json:"currency" validate:"required,len=3"`
}

func (r UpdatePricingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r UpdatePricingRequest) ToPricing() *pricing.Pricing {
	return &pricing.Pricing{
		FirstScreenPrice:      r.FirstScreenPrice,
		AdditionalScreenPrice: r.AdditionalScreenPrice,
		Currency:              r.Currency,
		UpdatedAt:             time.Now().UTC(),
	}
}

// PricingResponse is the current pricing table
type PricingResponse struct {
	FirstScreenPrice      decimal.Decimal `json:"first_screen_price"`
	AdditionalScreenPrice decimal.Decimal `json:"additional_screen_price"`
	Currency              string          `json:"currency"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func NewPricingResponse(p *pricing.Pricing) *PricingResponse {
	return &PricingResponse{
		FirstScreenPrice:      p.FirstScreenPrice,
		AdditionalScreenPrice: p.AdditionalScreenPrice,
		Currency:              p.Currency,
		UpdatedAt:             p.UpdatedAt,
	}
}
