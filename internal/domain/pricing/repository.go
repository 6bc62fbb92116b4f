package pricing

import "context"

// Repository provides access to the stored pricing table
type Repository interface {
	// Get returns the current pricing table
	Get(ctx context.Context) (*Pricing, error)

	// Update replaces the pricing table
	Update(ctx context.Context, p *Pricing) error
}
