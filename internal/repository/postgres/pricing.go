package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/postgres"
	"github.com/shopspring/decimal"
)

type pricingRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewPricingRepository creates a postgres-backed pricing repository.
// The pricing table is a single configuration row.
func NewPricingRepository(db *postgres.DB, logger *logger.Logger) pricing.Repository {
	return &pricingRepository{db: db, logger: logger}
}

type pricingRow struct {
	FirstScreenPrice      decimal.Decimal `db:"first_screen_price"`
	AdditionalScreenPrice decimal.Decimal `db:"additional_screen_price"`
	Currency              string          `db:"currency"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

func (r *pricingRepository) Get(ctx context.Context) (*pricing.Pricing, error) {
	q := r.db.GetQuerier(ctx)

	var row pricingRow
	err := q.GetContext(ctx, &row,
		`SELECT first_screen_price, additional_screen_price, currency, updated_at
		 FROM pricing WHERE id = 1`)
	if err == sql.ErrNoRows {
		return nil, ierr.WithError(pricing.ErrPricingNotFound).
			WithHint("No pricing table has been configured").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load pricing").
			Mark(ierr.ErrDatabase)
	}

	return &pricing.Pricing{
		FirstScreenPrice:      row.FirstScreenPrice,
		AdditionalScreenPrice: row.AdditionalScreenPrice,
		Currency:              row.Currency,
		UpdatedAt:             row.UpdatedAt,
	}, nil
}

func (r *pricingRepository) Update(ctx context.Context, p *pricing.Pricing) error {
	if err := p.Validate(); err != nil {
		return err
	}

	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx,
		`INSERT INTO pricing (id, first_screen_price, additional_screen_price, currency, updated_at)
		 VALUES (1, $1, $2, $3, NOW())
		 ON CONFLICT (id) DO UPDATE SET
			first_screen_price = EXCLUDED.first_screen_price,
			additional_screen_price = EXCLUDED.additional_screen_price,
			currency = EXCLUDED.currency,
			updated_at = NOW()`,
		p.FirstScreenPrice, p.AdditionalScreenPrice, p.Currency)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update pricing").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Infow("pricing updated",
		"first_screen_price", p.FirstScreenPrice.String(),
		"additional_screen_price", p.AdditionalScreenPrice.String(),
		"currency", p.Currency,
	)
	return nil
}
