package testutil

import (
	"context"
	"sync"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/pricing"
	ierr "github.com/Flexibelstudio/gym-screen-sub002/internal/errors"
)

// InMemoryPricingStore implements pricing.Repository
type InMemoryPricingStore struct {
	mu      sync.RWMutex
	current *pricing.Pricing
}

func NewInMemoryPricingStore() *InMemoryPricingStore {
	return &InMemoryPricingStore{}
}

func (s *InMemoryPricingStore) Get(ctx context.Context) (*pricing.Pricing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ierr.WithError(pricing.ErrPricingNotFound).
			WithHint("No pricing table has been saved yet").
			Mark(ierr.ErrNotFound)
	}
	cp := *s.current
	return &cp, nil
}

func (s *InMemoryPricingStore) Update(ctx context.Context, p *pricing.Pricing) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.current = &cp
	return nil
}

func (s *InMemoryPricingStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
