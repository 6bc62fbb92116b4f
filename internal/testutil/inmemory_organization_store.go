package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/billing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/types"
)

// InMemoryOrganizationStore implements organization.Repository with the
// same compare-and-swap semantics as the postgres repository.
type InMemoryOrganizationStore struct {
	mu   sync.RWMutex
	orgs map[string]*organization.Organization
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{
		orgs: make(map[string]*organization.Organization),
	}
}

// Add seeds an organization for a test. It stores a copy so the caller
// can keep mutating its fixture.
func (s *InMemoryOrganizationStore) Add(org *organization.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs[org.ID] = copyOrganization(org)
}

func (s *InMemoryOrganizationStore) Get(ctx context.Context, id string) (*organization.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgs[id]
	if !ok {
		return nil, ierr.NewErrorf("organization %s not found", id).
			WithHint("Organization does not exist").
			Mark(ierr.ErrNotFound)
	}
	return copyOrganization(org), nil
}

func (s *InMemoryOrganizationStore) List(ctx context.Context) ([]*organization.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orgs := make([]*organization.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		orgs = append(orgs, copyOrganization(org))
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })
	return orgs, nil
}

func (s *InMemoryOrganizationStore) UpdateBillingLedger(ctx context.Context, org *organization.Organization, previous *types.YearMonth) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orgs[org.ID]
	if !ok {
		return ierr.NewErrorf("organization %s not found", org.ID).
			Mark(ierr.ErrNotFound)
	}
	if !periodsEqual(stored.LastBilledPeriod, previous) {
		return ierr.WithError(billing.ErrStalePeriod).
			WithHint("Billing state changed concurrently. Refresh and retry.").
			Mark(ierr.ErrVersionConflict)
	}

	stored.LastBilledPeriod = copyPeriod(org.LastBilledPeriod)
	stored.LastBilledAt = nil
	if org.LastBilledAt != nil {
		t := *org.LastBilledAt
		stored.LastBilledAt = &t
	}
	return nil
}

func (s *InMemoryOrganizationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs = make(map[string]*organization.Organization)
}

func periodsEqual(a, b *types.YearMonth) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func copyPeriod(ym *types.YearMonth) *types.YearMonth {
	if ym == nil {
		return nil
	}
	p := *ym
	return &p
}

func copyOrganization(org *organization.Organization) *organization.Organization {
	cp := *org
	cp.LastBilledPeriod = copyPeriod(org.LastBilledPeriod)
	if org.LastBilledAt != nil {
		t := *org.LastBilledAt
		cp.LastBilledAt = &t
	}
	if org.Discount != nil {
		d := *org.Discount
		cp.Discount = &d
	}
	cp.Screens = make([]organization.Screen, len(org.Screens))
	copy(cp.Screens, org.Screens)
	return &cp
}
