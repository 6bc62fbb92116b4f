package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/billing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/postgres"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type organizationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewOrganizationRepository creates a postgres-backed organization repository
func NewOrganizationRepository(db *postgres.DB, logger *logger.Logger) organization.Repository {
	return &organizationRepository{db: db, logger: logger}
}

type organizationRow struct {
	ID               string              `db:"id"`
	Name             string              `db:"name"`
	LastBilledPeriod sql.NullString      `db:"last_billed_period"`
	LastBilledAt     sql.NullTime        `db:"last_billed_at"`
	DiscountType     sql.NullString      `db:"discount_type"`
	DiscountValue    decimal.NullDecimal `db:"discount_value"`
	CreatedAt        time.Time           `db:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at"`
}

type screenRow struct {
	ID             string       `db:"id"`
	OrganizationID string       `db:"organization_id"`
	Name           string       `db:"name"`
	CreatedAt      sql.NullTime `db:"created_at"`
}

func (r organizationRow) toDomain() (*organization.Organization, error) {
	org := &organization.Organization{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.LastBilledPeriod.Valid {
		ym, err := types.ParseYearMonth(r.LastBilledPeriod.String)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("corrupt last_billed_period for organization %s", r.ID).
				Mark(ierr.ErrDatabase)
		}
		org.LastBilledPeriod = &ym
	}
	if r.LastBilledAt.Valid {
		t := r.LastBilledAt.Time
		org.LastBilledAt = &t
	}
	if r.DiscountType.Valid && r.DiscountValue.Valid {
		org.Discount = &types.Discount{
			Type:  types.DiscountType(r.DiscountType.String),
			Value: r.DiscountValue.Decimal,
		}
	}
	return org, nil
}

func (r screenRow) toDomain() organization.Screen {
	s := organization.Screen{ID: r.ID, Name: r.Name}
	if r.CreatedAt.Valid {
		t := r.CreatedAt.Time
		s.CreatedAt = &t
	}
	return s
}

const organizationColumns = `id, name, last_billed_period, last_billed_at,
	discount_type, discount_value, created_at, updated_at`

func (r *organizationRepository) Get(ctx context.Context, id string) (*organization.Organization, error) {
	q := r.db.GetQuerier(ctx)

	var row organizationRow
	err := q.GetContext(ctx, &row,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("organization %s not found", id).
			WithHint("Organization does not exist").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load organization").
			Mark(ierr.ErrDatabase)
	}

	org, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	screens, err := r.loadScreens(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	org.Screens = screens[id]
	return org, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]*organization.Organization, error) {
	q := r.db.GetQuerier(ctx)

	var rows []organizationRow
	err := q.SelectContext(ctx, &rows,
		`SELECT `+organizationColumns+` FROM organizations ORDER BY created_at`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list organizations").
			Mark(ierr.ErrDatabase)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	screens, err := r.loadScreens(ctx, ids)
	if err != nil {
		return nil, err
	}

	orgs := make([]*organization.Organization, 0, len(rows))
	for _, row := range rows {
		org, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		org.Screens = screens[org.ID]
		orgs = append(orgs, org)
	}
	return orgs, nil
}

func (r *organizationRepository) loadScreens(ctx context.Context, orgIDs []string) (map[string][]organization.Screen, error) {
	result := make(map[string][]organization.Screen, len(orgIDs))
	if len(orgIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(
		`SELECT id, organization_id, name, created_at FROM screens
		 WHERE organization_id IN (?) ORDER BY created_at NULLS FIRST, id`, orgIDs)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	q := r.db.GetQuerier(ctx)
	var rows []screenRow
	if err := q.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load screens").
			Mark(ierr.ErrDatabase)
	}

	for _, row := range rows {
		result[row.OrganizationID] = append(result[row.OrganizationID], row.toDomain())
	}
	return result, nil
}

// UpdateBillingLedger writes the ledger marker with a compare-and-swap
// on the previously observed value. A CAS miss means another actor
// advanced or reverted the ledger since the caller read it.
func (r *organizationRepository) UpdateBillingLedger(ctx context.Context, org *organization.Organization, previous *types.YearMonth) error {
	q := r.db.GetQuerier(ctx)

	res, err := q.ExecContext(ctx,
		`UPDATE organizations
		 SET last_billed_period = $1, last_billed_at = $2, updated_at = NOW()
		 WHERE id = $3 AND last_billed_period IS NOT DISTINCT FROM $4`,
		periodString(org.LastBilledPeriod), nullTime(org.LastBilledAt), org.ID, periodString(previous))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update billing ledger").
			Mark(ierr.ErrDatabase)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.WithError(billing.ErrStalePeriod).
			WithHint("Billing state changed concurrently. Refresh and retry.").
			Mark(ierr.ErrVersionConflict)
	}

	r.logger.Debugw("billing ledger updated",
		"organization_id", org.ID,
		"last_billed_period", periodString(org.LastBilledPeriod),
	)
	return nil
}

func periodString(ym *types.YearMonth) sql.NullString {
	if ym == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: ym.String(), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
