package pricing

import "errors"

var (
	// ErrInvalidPricing is returned when pricing values are negative or missing
	ErrInvalidPricing = errors.New("invalid pricing")

	// ErrPricingNotFound is returned when no pricing table has been configured
	ErrPricingNotFound = errors.New("pricing not found")
)
