package usecase

import (
	"context"
	"time"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/internal/domain/service"
	"nuptio/pkg/errors"
)

type SubscriptionUseCase struct {
	subscriptionRepo repository.SubscriptionRepository
	storefrontRepo   repository.StorefrontRepository
	billing          service.BillingService
}

func NewSubscriptionUseCase(
	subscriptionRepo repository.SubscriptionRepository,
	storefrontRepo repository.StorefrontRepository,
	billing service.BillingService,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		storefrontRepo:   storefrontRepo,
		billing:          billing,
	}
}

type SubscribeInput struct {
	StorefrontID string `json:"storefront_id"`
	Plan         string `json:"plan"`
}

type SubscriptionResult struct {
	Subscription *entity.Subscription `json:"subscription"`
	Invoice      *entity.Invoice      `json:"invoice"`
}

// Subscribe puts an owned storefront on a monthly plan and issues the first
// invoice. One active subscription per storefront.
func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, ownerID string, input SubscribeInput) (*SubscriptionResult, error) {
	if _, err := uc.billing.PlanPrice(input.Plan); err != nil {
		return nil, err
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, input.StorefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this storefront", nil)
	}

	if existing, err := uc.subscriptionRepo.GetActiveByStorefrontID(ctx, storefront.ID); err == nil && existing != nil {
		return nil, errors.Conflict("Storefront already has an active subscription", nil)
	}

	now := time.Now()
	subscription := &entity.Subscription{
		StorefrontID: storefront.ID,
		OwnerID:      ownerID,
		Plan:         input.Plan,
		Status:       "active",
		PeriodStart:  now,
		PeriodEnd:    now.AddDate(0, 1, 0),
	}

	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	invoice, err := uc.billing.IssueInvoice(subscription)
	if err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	return &SubscriptionResult{Subscription: subscription, Invoice: invoice}, nil
}

func (uc *SubscriptionUseCase) Cancel(ctx context.Context, ownerID, subscriptionID string) (*entity.Subscription, error) {
	subscription, err := uc.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.OwnerID != ownerID {
		return nil, errors.NotFound("Subscription", nil)
	}
	if subscription.Status != "active" {
		return nil, errors.Conflict("Subscription is not active", nil)
	}

	// Cancellation keeps the paid period; it just stops renewal.
	now := time.Now()
	subscription.Status = "cancelled"
	subscription.CancelledAt = &now

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, err
	}

	return subscription, nil
}

// Renew rolls an active subscription into the next period and issues the
// next invoice. Run by a scheduler near period end.
func (uc *SubscriptionUseCase) Renew(ctx context.Context, subscriptionID string) (*SubscriptionResult, error) {
	subscription, err := uc.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.Status != "active" {
		return nil, errors.Conflict("Only active subscriptions renew", nil)
	}

	subscription.PeriodStart = subscription.PeriodEnd
	subscription.PeriodEnd = subscription.PeriodEnd.AddDate(0, 1, 0)

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, err
	}

	invoice, err := uc.billing.IssueInvoice(subscription)
	if err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	return &SubscriptionResult{Subscription: subscription, Invoice: invoice}, nil
}

func (uc *SubscriptionUseCase) ListMine(ctx context.Context, ownerID string) ([]*entity.Subscription, error) {
	return uc.subscriptionRepo.ListByOwnerID(ctx, ownerID)
}

func (uc *SubscriptionUseCase) ListInvoices(ctx context.Context, ownerID, subscriptionID string) ([]*entity.Invoice, error) {
	subscription, err := uc.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if subscription.OwnerID != ownerID {
		return nil, errors.NotFound("Subscription", nil)
	}

	return uc.subscriptionRepo.ListInvoices(ctx, subscriptionID)
}
