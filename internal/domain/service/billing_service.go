package service

import (
	"time"

	"nuptio/internal/domain/entity"
	"nuptio/pkg/errors"
)

// BillingService prices subscription plans and issues invoices for a
// period. Payment collection itself happens at the provider and is out of
// scope here; webhooks settle invoices elsewhere.
type BillingService interface {
	PlanPrice(plan string) (float64, error)
	IssueInvoice(subscription *entity.Subscription) (*entity.Invoice, error)
}

type flatRateBillingService struct {
	currency string
	prices   map[string]float64
}

func NewFlatRateBillingService(currency string) BillingService {
	return &flatRateBillingService{
		currency: currency,
		prices: map[string]float64{
			entity.PlanBasic:   29.90,
			entity.PlanPremium: 79.90,
			entity.PlanElite:   149.90,
		},
	}
}

func (s *flatRateBillingService) PlanPrice(plan string) (float64, error) {
	price, ok := s.prices[plan]
	if !ok {
		return 0, errors.BadRequest("Unknown subscription plan", nil)
	}
	return price, nil
}

func (s *flatRateBillingService) IssueInvoice(subscription *entity.Subscription) (*entity.Invoice, error) {
	price, err := s.PlanPrice(subscription.Plan)
	if err != nil {
		return nil, err
	}

	return &entity.Invoice{
		SubscriptionID: subscription.ID,
		StorefrontID:   subscription.StorefrontID,
		Amount:         price,
		Currency:       s.currency,
		Status:         "open",
		IssuedAt:       time.Now(),
	}, nil
}
