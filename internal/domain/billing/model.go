package billing

import (
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/shopspring/decimal"
)

// CalculationParams holds all necessary input for calculating an
// invoice. Now is injected explicitly so the calculation is fully
// deterministic and reproducible for audit.
type CalculationParams struct {
	OrganizationID   string
	Screens          []organization.Screen
	LastBilledPeriod *types.YearMonth // nil if the organization was never billed
	Discount         *types.Discount  // nil means no discount
	Pricing          pricing.Pricing
	Now              time.Time
}

// LineItem is a steady-state charge line for the billing period.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// AdjustmentLineItem is a catch-up proration charge for one screen
// added during the adjustment period.
type AdjustmentLineItem struct {
	ScreenID    string          `json:"screen_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResult is a computed view of what the organization owes for
// the action period. It is never persisted; the only durable outcome
// of billing is the ledger marker on the organization.
type InvoiceResult struct {
	OrganizationID        string               `json:"organization_id"`
	Currency              string               `json:"currency"`
	ActionPeriod          types.YearMonth      `json:"action_period"`
	AdjustmentPeriod      types.YearMonth      `json:"adjustment_period"`
	BillingPeriodLabel    string               `json:"billing_period_label"`
	AdjustmentPeriodLabel string               `json:"adjustment_period_label"`
	RegularLineItems      []LineItem           `json:"regular_line_items"`
	AdjustmentLineItems   []AdjustmentLineItem `json:"adjustment_line_items"`
	Subtotal              decimal.Decimal      `json:"subtotal"`
	DiscountAmount        decimal.Decimal      `json:"discount_amount"`
	DiscountDescription   string               `json:"discount_description"`
	TotalAmount           decimal.Decimal      `json:"total_amount"`
}
