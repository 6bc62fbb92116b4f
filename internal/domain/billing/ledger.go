package billing

import (
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
)

// Ledger governs how an organization's last-billed marker advances and
// rolls back. Transitions move strictly forward one period per mark
// and backward one period per undo; persistence of the mutated
// organization is the caller's responsibility.
type Ledger struct{}

// NewLedger creates a billing ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// MarkBilled advances the ledger to period. The supplied period must
// equal the freshly computed action period for the organization; a
// mismatch means the caller acted on stale state and is rejected
// without mutating anything.
func (l *Ledger) MarkBilled(org *organization.Organization, period types.YearMonth, now time.Time) error {
	expected := NextActionPeriod(org.Screens, org.LastBilledPeriod, now)
	if !period.Equal(expected) {
		return ierr.WithError(ErrStalePeriod).
			WithHintf("Expected billing period %s, got %s. Refresh and retry.", expected, period).
			WithReportableDetails(map[string]any{
				"expected_period": expected.String(),
				"given_period":    period.String(),
			}).
			Mark(ierr.ErrVersionConflict)
	}

	p := period
	t := now
	org.LastBilledPeriod = &p
	org.LastBilledAt = &t
	return nil
}

// Undo rolls the ledger back exactly one period. When the previous
// period is the synthetic baseline the marker collapses to nil, so an
// undo directly after the first mark restores the never-billed state.
// LastBilledAt is display-only and simply cleared.
func (l *Ledger) Undo(org *organization.Organization, now time.Time) error {
	if org.LastBilledPeriod == nil {
		return ierr.WithError(ErrNothingToUndo).
			WithHint("Organization has not been billed yet").
			Mark(ierr.ErrInvalidOperation)
	}

	previous := org.LastBilledPeriod.Previous()
	if previous.Equal(SyntheticLastBilled(org.Screens, now)) {
		org.LastBilledPeriod = nil
	} else {
		org.LastBilledPeriod = &previous
	}
	org.LastBilledAt = nil
	return nil
}
