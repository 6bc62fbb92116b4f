package billing

import (
	"testing"
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrg() *organization.Organization {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return &organization.Organization{
		ID:   "org_test",
		Name: "Flex Gym",
		Screens: []organization.Screen{
			{ID: "scr_1", Name: "Entrance", CreatedAt: &created},
		},
	}
}

func TestLedger_MarkBilled(t *testing.T) {
	ledger := NewLedger()
	now := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)

	t.Run("advances_to_action_period", func(t *testing.T) {
		org := newTestOrg()
		period := NextActionPeriod(org.Screens, org.LastBilledPeriod, now)

		err := ledger.MarkBilled(org, period, now)
		require.NoError(t, err)
		require.NotNil(t, org.LastBilledPeriod)
		assert.True(t, org.LastBilledPeriod.Equal(types.YearMonth{Year: 2024, Month: time.February}))
		require.NotNil(t, org.LastBilledAt)
		assert.Equal(t, now, *org.LastBilledAt)
	})

	t.Run("rejects_stale_period", func(t *testing.T) {
		org := newTestOrg()
		stale := types.YearMonth{Year: 2023, Month: time.November}

		err := ledger.MarkBilled(org, stale, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStalePeriod)
		assert.Nil(t, org.LastBilledPeriod, "ledger must not change on rejection")
		assert.Nil(t, org.LastBilledAt)
	})

	t.Run("rejects_repeated_mark_for_same_period", func(t *testing.T) {
		org := newTestOrg()
		period := NextActionPeriod(org.Screens, org.LastBilledPeriod, now)
		require.NoError(t, ledger.MarkBilled(org, period, now))

		err := ledger.MarkBilled(org, period, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStalePeriod)
	})

	t.Run("monotonic_advance", func(t *testing.T) {
		org := newTestOrg()
		start := NextActionPeriod(org.Screens, org.LastBilledPeriod, now)

		expected := start
		for i := 0; i < 12; i++ {
			period := NextActionPeriod(org.Screens, org.LastBilledPeriod, now)
			assert.True(t, period.Equal(expected), "advance %d", i)
			require.NoError(t, ledger.MarkBilled(org, period, now))
			expected = expected.Next()
		}
		assert.True(t, org.LastBilledPeriod.Equal(types.YearMonth{Year: 2025, Month: time.January}))
	})
}

func TestLedger_Undo(t *testing.T) {
	ledger := NewLedger()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects_unbilled", func(t *testing.T) {
		org := newTestOrg()
		err := ledger.Undo(org, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNothingToUndo)
	})

	t.Run("steps_back_one_period", func(t *testing.T) {
		org := newTestOrg()
		billed := types.YearMonth{Year: 2024, Month: time.April}
		billedAt := now
		org.LastBilledPeriod = &billed
		org.LastBilledAt = &billedAt

		require.NoError(t, ledger.Undo(org, now))
		require.NotNil(t, org.LastBilledPeriod)
		assert.True(t, org.LastBilledPeriod.Equal(types.YearMonth{Year: 2024, Month: time.March}))
		assert.Nil(t, org.LastBilledAt)
	})

	t.Run("undo_after_first_mark_restores_unbilled", func(t *testing.T) {
		org := newTestOrg()
		period := NextActionPeriod(org.Screens, org.LastBilledPeriod, now)
		require.NoError(t, ledger.MarkBilled(org, period, now))

		require.NoError(t, ledger.Undo(org, now))
		assert.Nil(t, org.LastBilledPeriod)
		assert.Nil(t, org.LastBilledAt)
	})

	t.Run("mark_then_undo_is_identity_for_ledger_fields", func(t *testing.T) {
		org := newTestOrg()
		billed := types.YearMonth{Year: 2024, Month: time.April}
		org.LastBilledPeriod = &billed

		period := NextActionPeriod(org.Screens, org.LastBilledPeriod, now)
		require.NoError(t, ledger.MarkBilled(org, period, now))
		require.NoError(t, ledger.Undo(org, now))

		require.NotNil(t, org.LastBilledPeriod)
		assert.True(t, org.LastBilledPeriod.Equal(billed))
	})

	t.Run("repeated_undo_steps_back_one_at_a_time", func(t *testing.T) {
		org := newTestOrg()
		billed := types.YearMonth{Year: 2024, Month: time.May}
		org.LastBilledPeriod = &billed

		require.NoError(t, ledger.Undo(org, now))
		assert.True(t, org.LastBilledPeriod.Equal(types.YearMonth{Year: 2024, Month: time.April}))

		require.NoError(t, ledger.Undo(org, now))
		assert.True(t, org.LastBilledPeriod.Equal(types.YearMonth{Year: 2024, Month: time.March}))

		require.NoError(t, ledger.Undo(org, now))
		assert.True(t, org.LastBilledPeriod.Equal(types.YearMonth{Year: 2024, Month: time.February}))

		// January is the synthetic baseline for a screen created in
		// January; the next undo lands on the unbilled state.
		require.NoError(t, ledger.Undo(org, now))
		assert.Nil(t, org.LastBilledPeriod)

		err := ledger.Undo(org, now)
		assert.ErrorIs(t, err, ErrNothingToUndo)
	})
}
