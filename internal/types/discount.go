package types

import (
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/shopspring/decimal"
)

// DiscountType represents the kind of discount applied to an
// organization's invoice (fixed amount or percentage)
type DiscountType string

const (
	// DiscountTypeFixed represents a fixed amount discount
	DiscountTypeFixed DiscountType = "fixed"
	// DiscountTypePercentage represents a percentage-based discount
	DiscountTypePercentage DiscountType = "percentage"
)

func (t DiscountType) Validate() error {
	switch t {
	case DiscountTypeFixed, DiscountTypePercentage:
		return nil
	default:
		return ierr.NewErrorf("invalid discount type: %s", t).
			WithHint("Discount type must be fixed or percentage").
			Mark(ierr.ErrValidation)
	}
}

// Discount is an additive reduction applied once to the invoice
// subtotal after regular and adjustment charges are summed.
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

func (d Discount) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if d.Value.IsNegative() {
		return ierr.NewError("discount value must be non negative").
			WithHint("Discount value cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if d.Type == DiscountTypePercentage && d.Value.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("percentage discount cannot exceed 100").
			WithHint("Percentage discounts are limited to 100%").
			Mark(ierr.ErrValidation)
	}
	return nil
}
