package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Calculator derives an invoice from organization state and the
// pricing table. Implementations must be pure: identical inputs yield
// identical results, with no side effects and no wall-clock reads.
type Calculator interface {
	Calculate(ctx context.Context, params CalculationParams) (*InvoiceResult, error)
}

// NewCalculator creates the monthly day-prorated invoice calculator.
func NewCalculator() Calculator {
	return &monthlyCalculator{}
}

type monthlyCalculator struct{}

// SyntheticLastBilled resolves the baseline for an organization that
// was never billed: the calendar month the earliest screen was created
// in, or the month before now when no screen carries a timestamp. The
// first action period is then the month after, so the organization's
// first real month is charged late through adjustment proration.
func SyntheticLastBilled(screens []organization.Screen, now time.Time) types.YearMonth {
	var earliest *time.Time
	for _, s := range screens {
		if s.CreatedAt == nil {
			continue
		}
		if earliest == nil || s.CreatedAt.Before(*earliest) {
			earliest = s.CreatedAt
		}
	}
	if earliest == nil {
		return types.YearMonthOf(now.UTC()).Previous()
	}
	return types.YearMonthOf(earliest.UTC())
}

// NextActionPeriod computes the single period the next invoice covers:
// exactly one calendar month after the last billed period, real or
// synthetic. The ledger never skips or repeats periods.
func NextActionPeriod(screens []organization.Screen, lastBilled *types.YearMonth, now time.Time) types.YearMonth {
	if lastBilled != nil {
		return lastBilled.Next()
	}
	return SyntheticLastBilled(screens, now).Next()
}

func (c *monthlyCalculator) Calculate(_ context.Context, params CalculationParams) (*InvoiceResult, error) {
	if err := params.Pricing.Validate(); err != nil {
		return nil, err
	}
	if params.Discount != nil {
		if err := params.Discount.Validate(); err != nil {
			return nil, err
		}
	}
	if params.Now.IsZero() {
		return nil, ierr.NewError("calculation reference time is required").
			WithHint("Now must be supplied by the caller").
			Mark(ierr.ErrValidation)
	}

	actionPeriod := NextActionPeriod(params.Screens, params.LastBilledPeriod, params.Now)
	adjustmentPeriod := actionPeriod.Previous()

	result := &InvoiceResult{
		OrganizationID:        params.OrganizationID,
		Currency:              params.Pricing.Currency,
		ActionPeriod:          actionPeriod,
		AdjustmentPeriod:      adjustmentPeriod,
		BillingPeriodLabel:    actionPeriod.Label(),
		AdjustmentPeriodLabel: adjustmentPeriod.Label(),
		RegularLineItems:      []LineItem{},
		AdjustmentLineItems:   []AdjustmentLineItem{},
		Subtotal:              decimal.Zero,
		DiscountAmount:        decimal.Zero,
	}

	result.RegularLineItems = c.regularLineItems(params, actionPeriod)
	result.AdjustmentLineItems = c.adjustmentLineItems(params, adjustmentPeriod)

	for _, item := range result.RegularLineItems {
		result.Subtotal = result.Subtotal.Add(item.Amount)
	}
	for _, item := range result.AdjustmentLineItems {
		result.Subtotal = result.Subtotal.Add(item.Amount)
	}

	result.DiscountAmount, result.DiscountDescription = c.applyDiscount(params.Discount, result.Subtotal)

	total := result.Subtotal.Sub(result.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	result.TotalAmount = total

	return result, nil
}

// regularLineItems charges the steady-state cost for the billing
// period: every screen that existed before the period started, the
// first at the first-screen price, the rest aggregated at the
// additional-screen price.
func (c *monthlyCalculator) regularLineItems(params CalculationParams, actionPeriod types.YearMonth) []LineItem {
	periodStart := actionPeriod.Start()
	count := int64(lo.CountBy(params.Screens, func(s organization.Screen) bool {
		return s.ExistedBefore(periodStart)
	}))
	if count == 0 {
		return []LineItem{}
	}

	items := []LineItem{{
		Description: "First screen",
		Quantity:    1,
		UnitPrice:   params.Pricing.FirstScreenPrice,
		Amount:      params.Pricing.FirstScreenPrice,
	}}
	if count > 1 {
		additional := count - 1
		items = append(items, LineItem{
			Description: "Additional screens",
			Quantity:    additional,
			UnitPrice:   params.Pricing.AdditionalScreenPrice,
			Amount:      params.Pricing.AdditionalScreenPrice.Mul(decimal.NewFromInt(additional)),
		})
	}
	return items
}

// adjustmentLineItems charges screens added during the adjustment
// period a month late, prorated by the days remaining in that month
// from their creation day (inclusive). Tier assignment is an explicit
// accumulator pass over the screens in chronological order: the
// running count starts at the number of screens that existed before
// the adjustment period began, and only a screen seen while the count
// is zero gets the first-screen price.
func (c *monthlyCalculator) adjustmentLineItems(params CalculationParams, adjustmentPeriod types.YearMonth) []AdjustmentLineItem {
	added := lo.Filter(params.Screens, func(s organization.Screen, _ int) bool {
		return s.CreatedDuring(adjustmentPeriod)
	})
	if len(added) == 0 {
		return []AdjustmentLineItem{}
	}

	// Stable sort: same-instant creations keep their stored order, so
	// the tie-break on who gets the cheaper tier is deterministic.
	sort.SliceStable(added, func(i, j int) bool {
		return added[i].CreatedAt.Before(*added[j].CreatedAt)
	})

	periodStart := adjustmentPeriod.Start()
	running := lo.CountBy(params.Screens, func(s organization.Screen) bool {
		return s.ExistedBefore(periodStart)
	})

	daysInMonth := adjustmentPeriod.Days()
	decimalDays := decimal.NewFromInt(int64(daysInMonth))

	items := make([]AdjustmentLineItem, 0, len(added))
	for _, s := range added {
		tierPrice := params.Pricing.AdditionalScreenPrice
		if running == 0 {
			tierPrice = params.Pricing.FirstScreenPrice
		}
		running++

		remainingDays := daysInMonth - s.CreatedAt.UTC().Day() + 1
		amount := tierPrice.Mul(decimal.NewFromInt(int64(remainingDays))).Div(decimalDays)

		items = append(items, AdjustmentLineItem{
			ScreenID: s.ID,
			Description: fmt.Sprintf("%s added %s (%d of %d days)",
				screenLabel(s), s.CreatedAt.UTC().Format("2006-01-02"), remainingDays, daysInMonth),
			Amount: amount,
		})
	}
	return items
}

// applyDiscount reduces the subtotal once, after regular and
// adjustment charges are summed. Fixed discounts are clamped at the
// subtotal so the discount amount never exceeds what was charged.
func (c *monthlyCalculator) applyDiscount(discount *types.Discount, subtotal decimal.Decimal) (decimal.Decimal, string) {
	if discount == nil {
		return decimal.Zero, "none"
	}

	switch discount.Type {
	case types.DiscountTypePercentage:
		amount := subtotal.Mul(discount.Value).Div(decimal.NewFromInt(100))
		return amount, fmt.Sprintf("%s%% discount", discount.Value.String())
	case types.DiscountTypeFixed:
		amount := discount.Value
		if amount.GreaterThan(subtotal) {
			amount = subtotal
		}
		return amount, fmt.Sprintf("Fixed discount of %s", discount.Value.String())
	default:
		return decimal.Zero, "none"
	}
}

func screenLabel(s organization.Screen) string {
	if s.Name != "" {
		return fmt.Sprintf("Screen %q", s.Name)
	}
	return "Screen"
}
