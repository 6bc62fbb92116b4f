package billing

import (
	"context"
	"testing"
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricing() pricing.Pricing {
	return pricing.Pricing{
		FirstScreenPrice:      decimal.NewFromInt(500),
		AdditionalScreenPrice: decimal.NewFromInt(200),
		Currency:              "SEK",
		UpdatedAt:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func screenAt(id string, t time.Time) organization.Screen {
	return organization.Screen{ID: id, Name: id, CreatedAt: &t}
}

func ymPtr(year int, month time.Month) *types.YearMonth {
	ym := types.YearMonth{Year: year, Month: month}
	return &ym
}

func TestCalculator_Calculate(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name     string
		params   CalculationParams
		expected func(t *testing.T, result *InvoiceResult)
	}{
		{
			// Zero screens, never billed: well-formed zero invoice for
			// the current month.
			name: "empty_organization_never_billed",
			params: CalculationParams{
				OrganizationID: "org_empty",
				Pricing:        testPricing(),
				Now:            time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				assert.Equal(t, types.YearMonth{Year: 2024, Month: time.March}, result.ActionPeriod)
				assert.Empty(t, result.RegularLineItems)
				assert.Empty(t, result.AdjustmentLineItems)
				assert.True(t, result.TotalAmount.IsZero())
				assert.Equal(t, "none", result.DiscountDescription)
				assert.Equal(t, "March 2024", result.BillingPeriodLabel)
			},
		},
		{
			// First screen created 2024-01-10, never billed: the first
			// invoice bills February up front and January late,
			// prorated 22 of 31 days at the first-screen price.
			name: "first_screen_first_invoice",
			params: CalculationParams{
				OrganizationID: "org_new",
				Screens: []organization.Screen{
					screenAt("scr_1", time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)),
				},
				Pricing: testPricing(),
				Now:     time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				assert.Equal(t, types.YearMonth{Year: 2024, Month: time.February}, result.ActionPeriod)
				assert.Equal(t, types.YearMonth{Year: 2024, Month: time.January}, result.AdjustmentPeriod)

				require.Len(t, result.RegularLineItems, 1)
				assert.Equal(t, "First screen", result.RegularLineItems[0].Description)
				assert.True(t, result.RegularLineItems[0].Amount.Equal(decimal.NewFromInt(500)))

				require.Len(t, result.AdjustmentLineItems, 1)
				wantProration := decimal.NewFromInt(500 * 22).Div(decimal.NewFromInt(31))
				assert.True(t, result.AdjustmentLineItems[0].Amount.Equal(wantProration),
					"got %s want %s", result.AdjustmentLineItems[0].Amount, wantProration)
				assert.InDelta(t, 354.84, result.AdjustmentLineItems[0].Amount.InexactFloat64(), 0.01)

				wantSubtotal := decimal.NewFromInt(500).Add(wantProration)
				assert.True(t, result.Subtotal.Equal(wantSubtotal))
				assert.True(t, result.TotalAmount.Equal(wantSubtotal))
			},
		},
		{
			// Second screen added 2024-03-15 with March already billed:
			// April's invoice carries two regular screens plus a 17 of
			// 31 day proration at the additional-screen price.
			name: "second_screen_added_mid_cycle",
			params: CalculationParams{
				OrganizationID: "org_growth",
				Screens: []organization.Screen{
					screenAt("scr_1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
					screenAt("scr_2", time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)),
				},
				LastBilledPeriod: ymPtr(2024, time.March),
				Pricing:          testPricing(),
				Now:              time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				assert.Equal(t, types.YearMonth{Year: 2024, Month: time.April}, result.ActionPeriod)

				require.Len(t, result.RegularLineItems, 2)
				assert.True(t, result.RegularLineItems[0].Amount.Equal(decimal.NewFromInt(500)))
				assert.Equal(t, int64(1), result.RegularLineItems[1].Quantity)
				assert.True(t, result.RegularLineItems[1].Amount.Equal(decimal.NewFromInt(200)))

				require.Len(t, result.AdjustmentLineItems, 1)
				assert.Equal(t, "scr_2", result.AdjustmentLineItems[0].ScreenID)
				wantProration := decimal.NewFromInt(200 * 17).Div(decimal.NewFromInt(31))
				assert.True(t, result.AdjustmentLineItems[0].Amount.Equal(wantProration))
				assert.InDelta(t, 109.68, result.AdjustmentLineItems[0].Amount.InexactFloat64(), 0.01)
			},
		},
		{
			// Percentage discount applied once on the subtotal.
			name: "percentage_discount",
			params: CalculationParams{
				OrganizationID: "org_discounted",
				Screens: []organization.Screen{
					{ID: "scr_legacy_1", Name: "Entrance"},
					{ID: "scr_legacy_2", Name: "Cardio"},
					{ID: "scr_legacy_3", Name: "Weights"},
					{ID: "scr_legacy_4", Name: "Spinning"},
				},
				LastBilledPeriod: ymPtr(2024, time.May),
				Discount: &types.Discount{
					Type:  types.DiscountTypePercentage,
					Value: decimal.NewFromInt(10),
				},
				Pricing: pricing.Pricing{
					FirstScreenPrice:      decimal.NewFromInt(400),
					AdditionalScreenPrice: decimal.NewFromInt(200),
					Currency:              "SEK",
				},
				Now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				// 400 + 3*200 = 1000
				assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(1000)))
				assert.True(t, result.DiscountAmount.Equal(decimal.NewFromInt(100)))
				assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(900)))
				assert.Equal(t, "10% discount", result.DiscountDescription)
			},
		},
		{
			// Fixed discount larger than the subtotal clamps to it;
			// total never goes negative.
			name: "fixed_discount_exceeds_subtotal",
			params: CalculationParams{
				OrganizationID: "org_overdiscounted",
				Screens: []organization.Screen{
					{ID: "scr_legacy", Name: "Lobby"},
				},
				LastBilledPeriod: ymPtr(2024, time.May),
				Discount: &types.Discount{
					Type:  types.DiscountTypeFixed,
					Value: decimal.NewFromInt(9000),
				},
				Pricing: testPricing(),
				Now:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(500)))
				assert.True(t, result.DiscountAmount.Equal(decimal.NewFromInt(500)))
				assert.True(t, result.TotalAmount.IsZero())
			},
		},
		{
			// Legacy screens without creation timestamps always count
			// in the regular charge and never generate adjustments.
			name: "legacy_screens_always_existed",
			params: CalculationParams{
				OrganizationID: "org_legacy",
				Screens: []organization.Screen{
					{ID: "scr_legacy_1", Name: "Reception"},
					{ID: "scr_legacy_2", Name: "Studio"},
				},
				Pricing: testPricing(),
				Now:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				// No timestamped screens: baseline falls back to the
				// month before now.
				assert.Equal(t, types.YearMonth{Year: 2024, Month: time.March}, result.ActionPeriod)
				require.Len(t, result.RegularLineItems, 2)
				assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(700)))
				assert.Empty(t, result.AdjustmentLineItems)
			},
		},
		{
			// Two screens added the same adjustment month to a brand
			// new organization: the chronologically first one gets the
			// first-screen tier, the second the additional tier.
			name: "tier_assignment_chronological",
			params: CalculationParams{
				OrganizationID: "org_two_at_once",
				Screens: []organization.Screen{
					screenAt("scr_b", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
					screenAt("scr_a", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
				},
				Pricing: testPricing(),
				Now:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				require.Len(t, result.AdjustmentLineItems, 2)
				assert.Equal(t, "scr_a", result.AdjustmentLineItems[0].ScreenID)
				assert.Equal(t, "scr_b", result.AdjustmentLineItems[1].ScreenID)

				// scr_a created day 10: 22/31 of the first-screen price.
				wantFirst := decimal.NewFromInt(500 * 22).Div(decimal.NewFromInt(31))
				// scr_b created day 20: 12/31 of the additional price.
				wantSecond := decimal.NewFromInt(200 * 12).Div(decimal.NewFromInt(31))
				assert.True(t, result.AdjustmentLineItems[0].Amount.Equal(wantFirst))
				assert.True(t, result.AdjustmentLineItems[1].Amount.Equal(wantSecond))
			},
		},
		{
			// A screen created on the last day of the adjustment month
			// pays exactly one day of proration.
			name: "proration_single_day",
			params: CalculationParams{
				OrganizationID: "org_last_day",
				Screens: []organization.Screen{
					{ID: "scr_legacy", Name: "Lobby"},
					screenAt("scr_late", time.Date(2024, 4, 30, 23, 0, 0, 0, time.UTC)),
				},
				LastBilledPeriod: ymPtr(2024, time.April),
				Pricing:          testPricing(),
				Now:              time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			},
			expected: func(t *testing.T, result *InvoiceResult) {
				require.Len(t, result.AdjustmentLineItems, 1)
				want := decimal.NewFromInt(200).Div(decimal.NewFromInt(30))
				assert.True(t, result.AdjustmentLineItems[0].Amount.Equal(want))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Calculate(context.Background(), tt.params)
			require.NoError(t, err)
			require.NotNil(t, result)
			tt.expected(t, result)
		})
	}
}

func TestCalculator_InvalidPricing(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Calculate(context.Background(), CalculationParams{
		OrganizationID: "org_bad",
		Pricing: pricing.Pricing{
			FirstScreenPrice:      decimal.NewFromInt(-1),
			AdditionalScreenPrice: decimal.NewFromInt(200),
			Currency:              "SEK",
		},
		Now: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pricing.ErrInvalidPricing)
}

func TestCalculator_Deterministic(t *testing.T) {
	calc := NewCalculator()
	params := CalculationParams{
		OrganizationID: "org_repeat",
		Screens: []organization.Screen{
			screenAt("scr_1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
			screenAt("scr_2", time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)),
		},
		Discount: &types.Discount{Type: types.DiscountTypePercentage, Value: decimal.NewFromInt(5)},
		Pricing:  testPricing(),
		Now:      time.Date(2024, 2, 25, 12, 0, 0, 0, time.UTC),
	}

	first, err := calc.Calculate(context.Background(), params)
	require.NoError(t, err)
	second, err := calc.Calculate(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculator_ProrationBounds(t *testing.T) {
	calc := NewCalculator()
	p := testPricing()

	// Every day of a month: the proration never leaves [0, tierPrice].
	for day := 1; day <= 31; day++ {
		params := CalculationParams{
			OrganizationID: "org_bounds",
			Screens: []organization.Screen{
				{ID: "scr_legacy", Name: "Lobby"},
				screenAt("scr_new", time.Date(2024, 3, day, 8, 0, 0, 0, time.UTC)),
			},
			LastBilledPeriod: ymPtr(2024, time.March),
			Pricing:          p,
			Now:              time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		}
		result, err := calc.Calculate(context.Background(), params)
		require.NoError(t, err)
		require.Len(t, result.AdjustmentLineItems, 1)

		amount := result.AdjustmentLineItems[0].Amount
		assert.False(t, amount.IsNegative(), "day %d", day)
		assert.True(t, amount.LessThanOrEqual(p.AdditionalScreenPrice), "day %d", day)
	}
}

func TestNextActionPeriod(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("advances_from_last_billed", func(t *testing.T) {
		last := types.YearMonth{Year: 2024, Month: time.February}
		got := NextActionPeriod(nil, &last, now)
		assert.Equal(t, types.YearMonth{Year: 2024, Month: time.March}, got)
	})

	t.Run("never_billed_uses_earliest_screen", func(t *testing.T) {
		screens := []organization.Screen{
			screenAt("scr_2", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
			screenAt("scr_1", time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)),
		}
		got := NextActionPeriod(screens, nil, now)
		assert.Equal(t, types.YearMonth{Year: 2024, Month: time.April}, got)
	})

	t.Run("never_billed_no_screens_uses_now", func(t *testing.T) {
		got := NextActionPeriod(nil, nil, now)
		assert.Equal(t, types.YearMonth{Year: 2024, Month: time.June}, got)
	})

	t.Run("year_boundary", func(t *testing.T) {
		last := types.YearMonth{Year: 2023, Month: time.December}
		got := NextActionPeriod(nil, &last, now)
		assert.Equal(t, types.YearMonth{Year: 2024, Month: time.January}, got)
	})
}
