package internal

import (
	"context"
	"time"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/config"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/logger"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/postgres"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
	"github.com/shopspring/decimal"
)

type demoScreen struct {
	name      string
	createdAt *time.Time
}

type demoOrganization struct {
	name     string
	discount *types.Discount
	screens  []demoScreen
}

// SeedDemoData inserts a couple of demo organizations with screens so
// the invoice endpoints have something to chew on locally.
func SeedDemoData() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	lastMonth := now.AddDate(0, -1, 0)
	thisMonth10th := time.Date(now.Year(), now.Month(), 10, 9, 0, 0, 0, time.UTC)

	orgs := []demoOrganization{
		{
			name: "Flexibel Friskvård Nord",
			screens: []demoScreen{
				{name: "Entrance", createdAt: &lastMonth},
				{name: "Cardio floor", createdAt: &thisMonth10th},
			},
		},
		{
			name: "Flexibel Friskvård Syd",
			discount: &types.Discount{
				Type:  types.DiscountTypePercentage,
				Value: decimal.NewFromInt(10),
			},
			screens: []demoScreen{
				// Legacy screen without a creation timestamp.
				{name: "Reception"},
			},
		},
	}

	return db.WithTx(ctx, func(txCtx context.Context) error {
		for _, org := range orgs {
			orgID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION)

			var discountType, discountValue any
			if org.discount != nil {
				discountType = string(org.discount.Type)
				discountValue = org.discount.Value
			}

			q := db.GetQuerier(txCtx)
			_, err := q.ExecContext(txCtx,
				`INSERT INTO organizations (id, name, discount_type, discount_value, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, NOW(), NOW())`,
				orgID, org.name, discountType, discountValue)
			if err != nil {
				return err
			}

			for _, screen := range org.screens {
				_, err := q.ExecContext(txCtx,
					`INSERT INTO screens (id, organization_id, name, created_at)
					 VALUES ($1, $2, $3, $4)`,
					types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SCREEN),
					orgID, screen.name, screen.createdAt)
				if err != nil {
					return err
				}
			}

			log.Infow("seeded organization", "id", orgID, "name", org.name, "screens", len(org.screens))
		}
		return nil
	})
}
