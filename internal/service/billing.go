package service

import (
	"context"

	"github.com/Flexibelstudio/gym-screen-sub002/internal/api/dto"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/billing"
	"github.com/Flexibelstudio/gym-screen-sub002/internal/domain/organization"
)

// BillingService exposes the engine to the host application: compute
// an invoice preview, advance the billing ledger, or revert it.
type BillingService interface {
	GetInvoicePreview(ctx context.Context, organizationID string) (*dto.InvoiceResponse, error)
	MarkBilled(ctx context.Context, organizationID string, req dto.MarkBilledRequest) (*dto.OrganizationBillingResponse, error)
	UndoBilling(ctx context.Context, organizationID string) (*dto.OrganizationBillingResponse, error)
}

type billingService struct {
	ServiceParams
	calculator     billing.Calculator
	ledger         *billing.Ledger
	pricingService PricingService
}

// NewBillingService creates a new billing service
func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams:  params,
		calculator:     billing.NewCalculator(),
		ledger:         billing.NewLedger(),
		pricingService: NewPricingService(params),
	}
}

// GetInvoicePreview recomputes the invoice for the organization's next
// action period. The result is a view; nothing is written.
func (s *billingService) GetInvoicePreview(ctx context.Context, organizationID string) (*dto.InvoiceResponse, error) {
	org, err := s.OrganizationRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	result, err := s.calculateInvoice(ctx, org)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(result), nil
}

// MarkBilled advances the organization's ledger to the given period
// and persists it with a compare-and-swap on the previous value.
func (s *billingService) MarkBilled(ctx context.Context, organizationID string, req dto.MarkBilledRequest) (*dto.OrganizationBillingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org, err := s.OrganizationRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	previous := org.LastBilledPeriod

	if err := s.ledger.MarkBilled(org, req.Period, now); err != nil {
		s.Logger.Warnw("mark billed rejected",
			"organization_id", org.ID,
			"period", req.Period.String(),
			"error", err,
		)
		return nil, err
	}

	if err := s.OrganizationRepo.UpdateBillingLedger(ctx, org, previous); err != nil {
		return nil, err
	}

	s.Logger.Infow("organization billed",
		"organization_id", org.ID,
		"period", req.Period.String(),
	)
	return s.billingResponse(org), nil
}

// UndoBilling rolls the ledger back one period and persists it.
func (s *billingService) UndoBilling(ctx context.Context, organizationID string) (*dto.OrganizationBillingResponse, error) {
	org, err := s.OrganizationRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	previous := org.LastBilledPeriod

	if err := s.ledger.Undo(org, now); err != nil {
		return nil, err
	}

	if err := s.OrganizationRepo.UpdateBillingLedger(ctx, org, previous); err != nil {
		return nil, err
	}

	s.Logger.Infow("billing reverted",
		"organization_id", org.ID,
		"reverted_from", previous.String(),
	)
	return s.billingResponse(org), nil
}

func (s *billingService) calculateInvoice(ctx context.Context, org *organization.Organization) (*billing.InvoiceResult, error) {
	pricingTable, err := s.pricingService.GetPricing(ctx)
	if err != nil {
		return nil, err
	}

	return s.calculator.Calculate(ctx, billing.CalculationParams{
		OrganizationID:   org.ID,
		Screens:          org.Screens,
		LastBilledPeriod: org.LastBilledPeriod,
		Discount:         org.Discount,
		Pricing:          *pricingTable,
		Now:              s.now(),
	})
}

func (s *billingService) billingResponse(org *organization.Organization) *dto.OrganizationBillingResponse {
	return &dto.OrganizationBillingResponse{
		OrganizationID:   org.ID,
		LastBilledPeriod: org.LastBilledPeriod,
		LastBilledAt:     org.LastBilledAt,
		NextActionPeriod: billing.NextActionPeriod(org.Screens, org.LastBilledPeriod, s.now()),
	}
}
