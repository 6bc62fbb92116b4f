package organization

import (
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
)

// Organization is the billing-relevant view of a customer account:
// its screens, its discount and the ledger marker recording the last
// calendar month an invoice was finalized for.
type Organization struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Screens          []Screen         `json:"screens"`
	LastBilledPeriod *types.YearMonth `json:"last_billed_period,omitempty" db:"last_billed_period"`
	LastBilledAt     *time.Time       `json:"last_billed_at,omitempty" db:"last_billed_at"`
	Discount         *types.Discount  `json:"discount,omitempty"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// Screen is one billable display unit. Legacy screens imported from
// before creation timestamps were recorded carry a nil CreatedAt and
// are treated as having always existed.
type Screen struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// ExistedBefore reports whether the screen existed strictly before t.
// Screens without a creation timestamp always existed.
func (s Screen) ExistedBefore(t time.Time) bool {
	return s.CreatedAt == nil || s.CreatedAt.Before(t)
}

// CreatedDuring reports whether the screen was created within the
// given calendar month. Legacy screens were never "created" in any
// month and therefore never generate adjustment charges.
func (s Screen) CreatedDuring(ym types.YearMonth) bool {
	return s.CreatedAt != nil && ym.Contains(*s.CreatedAt)
}
