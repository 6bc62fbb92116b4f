package dto

import (
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/billing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/validator"
	"github.com/shopspring/decimal"
)

// InvoiceResponse is the computed invoice preview for an organization.
// It mirrors the calculator output; nothing in it is persisted.
type InvoiceResponse struct {
	// InvoiceNumber is a display reference minted per preview; the
	// computed amounts below depend only on stored state.
	InvoiceNumber         string                       `json:"invoice_number"`
	OrganizationID        string                       `json:"organization_id"`
	Currency              string                       `json:"currency"`
	ActionPeriod          types.YearMonth              `json:"action_period"`
	BillingPeriodLabel    string                       `json:"billing_period_label"`
	AdjustmentPeriodLabel string                       `json:"adjustment_period_label"`
	RegularLineItems      []billing.LineItem           `json:"regular_line_items"`
	AdjustmentLineItems   []billing.AdjustmentLineItem `json:"adjustment_line_items"`
	Subtotal              decimal.Decimal              `json:"subtotal"`
	DiscountAmount        decimal.Decimal              `json:"discount_amount"`
	DiscountDescription   string                       `json:"discount_description"`
	TotalAmount           decimal.Decimal              `json:"total_amount"`
}

// NewInvoiceResponse converts a calculator result to the API shape
func NewInvoiceResponse(result *billing.InvoiceResult) *InvoiceResponse {
	return &InvoiceResponse{
		InvoiceNumber:         types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE),
		OrganizationID:        result.OrganizationID,
		Currency:              result.Currency,
		ActionPeriod:          result.ActionPeriod,
		BillingPeriodLabel:    result.BillingPeriodLabel,
		AdjustmentPeriodLabel: result.AdjustmentPeriodLabel,
		RegularLineItems:      result.RegularLineItems,
		AdjustmentLineItems:   result.AdjustmentLineItems,
		Subtotal:              result.Subtotal,
		DiscountAmount:        result.DiscountAmount,
		DiscountDescription:   result.DiscountDescription,
		TotalAmount:           result.TotalAmount,
	}
}

// MarkBilledRequest finalizes the invoice for the given period. The
// period must match the freshly computed action period; it acts as the
// optimistic-concurrency token for the ledger transition.
type MarkBilledRequest struct {
	Period types.YearMonth `json:"period" validate:"required"`
}

func (r MarkBilledRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Period.Validate()
}

// OrganizationBillingResponse reports the ledger state after a
// transition, including the next period an invoice would cover.
type OrganizationBillingResponse struct {
	OrganizationID   string           `json:"organization_id"`
	LastBilledPeriod *types.YearMonth `json:"last_billed_period,omitempty"`
	LastBilledAt     *time.Time       `json:"last_billed_at,omitempty"`
	NextActionPeriod types.YearMonth  `json:"next_action_period"`
}
