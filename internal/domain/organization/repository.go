package organization

import (
	"context"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
)

// Repository provides access to organizations and their billing ledger.
// General organization management lives outside this service; only the
// ledger columns are ever written here.
type Repository interface {
	// Get returns an organization with its screens loaded
	Get(ctx context.Context, id string) (*Organization, error)

	// List returns all organizations with their screens loaded
	List(ctx context.Context) ([]*Organization, error)

	// UpdateBillingLedger persists the organization's ledger marker.
	// previous must be the ledger value the caller read before the
	// transition; the update is a compare-and-swap on that value so
	// two concurrent advances cannot both succeed. A CAS miss is
	// reported as a version conflict.
	UpdateBillingLedger(ctx context.Context, org *Organization, previous *types.YearMonth) error
}
