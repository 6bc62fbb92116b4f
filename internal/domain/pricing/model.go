package pricing

import (
	"time"

	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/shopspring/decimal"
)

// Pricing is the tenant-wide pricing table: what the first screen in a
// period costs and what every screen beyond the first costs. A single
// row of configuration, editable at runtime.
type Pricing struct {
	FirstScreenPrice      decimal.Decimal `json:"first_screen_price" db:"first_screen_price"`
	AdditionalScreenPrice decimal.Decimal `json:"additional_screen_price" db:"additional_screen_price"`
	Currency              string          `json:"currency" db:"currency"`
	UpdatedAt             time.Time       `json:"updated_at" db:"updated_at"`
}

// Validate enforces the caller contract: prices present and non
// negative, currency set. Invoice calculation fails fast on violation.
func (p Pricing) Validate() error {
	if p.FirstScreenPrice.IsNegative() || p.AdditionalScreenPrice.IsNegative() {
		return ierr.WithError(ErrInvalidPricing).
			WithHint("Screen prices must be non negative").
			WithReportableDetails(map[string]any{
				"first_screen_price":      p.FirstScreenPrice.String(),
				"additional_screen_price": p.AdditionalScreenPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if p.Currency == "" {
		return ierr.WithError(ErrInvalidPricing).
			WithHint("Pricing currency is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
