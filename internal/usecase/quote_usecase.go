package usecase

import (
	"context"
	"log"
	"time"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type QuoteUseCase struct {
	quoteRepo        repository.QuoteRepository
	storefrontRepo   repository.StorefrontRepository
	conversationRepo repository.ConversationRepository
}

func NewQuoteUseCase(
	quoteRepo repository.QuoteRepository,
	storefrontRepo repository.StorefrontRepository,
	conversationRepo repository.ConversationRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		quoteRepo:        quoteRepo,
		storefrontRepo:   storefrontRepo,
		conversationRepo: conversationRepo,
	}
}

type CreateQuoteRequestInput struct {
	StorefrontID     string     `json:"storefront_id"`
	EventDate        *time.Time `json:"event_date"`
	GuestCount       int        `json:"guest_count"`
	Budget           float64    `json:"budget"`
	Message          string     `json:"message"`
	OpenConversation bool       `json:"open_conversation"`
}

// Create files a quote request against a published storefront. When asked,
// it also opens (or reuses) the buyer<->storefront conversation so the
// follow-up happens over chat.
func (uc *QuoteUseCase) Create(ctx context.Context, userID string, input CreateQuoteRequestInput) (*entity.QuoteRequest, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, input.StorefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.DeletedAt != nil || storefront.Status != "published" {
		return nil, errors.NotFound("Storefront", nil)
	}
	if storefront.OwnerID == userID {
		return nil, errors.BadRequest("Cannot request a quote from your own storefront", nil)
	}

	quote := &entity.QuoteRequest{
		UserID:       userID,
		StorefrontID: storefront.ID,
		EventDate:    input.EventDate,
		GuestCount:   input.GuestCount,
		Budget:       input.Budget,
		Message:      input.Message,
		Status:       "pending",
	}

	if input.OpenConversation {
		conversation, err := uc.conversationRepo.GetByUserAndStorefront(ctx, userID, storefront.ID)
		if err != nil {
			if !errors.Is(err, "NOT_FOUND") {
				return nil, err
			}
			conversation = &entity.Conversation{
				UserID:       userID,
				StorefrontID: storefront.ID,
			}
			if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
				log.Printf("Failed to open conversation for quote request: %v", err)
				conversation = nil
			}
		}
		if conversation != nil {
			quote.ConversationID = conversation.ID
		}
	}

	if err := uc.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

func (uc *QuoteUseCase) ListMine(ctx context.Context, userID string, limit, offset int) ([]*entity.QuoteRequest, int64, error) {
	return uc.quoteRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *QuoteUseCase) ListForStorefront(ctx context.Context, providerID, storefrontID, status string, limit, offset int) ([]*entity.QuoteRequest, int64, error) {
	storefront, err := uc.storefrontRepo.GetByID(ctx, storefrontID)
	if err != nil {
		return nil, 0, errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != providerID {
		return nil, 0, errors.Forbidden("You don't own this storefront", nil)
	}

	return uc.quoteRepo.ListByStorefrontID(ctx, storefrontID, status, limit, offset)
}

type RespondToQuoteInput struct {
	Status       string  `json:"status"` // "quoted" or "declined"
	QuotedAmount float64 `json:"quoted_amount"`
	Reply        string  `json:"reply"`
}

// Respond lets the storefront owner settle a pending request. Terminal
// either way; a settled request cannot be re-answered.
func (uc *QuoteUseCase) Respond(ctx context.Context, providerID, quoteID string, input RespondToQuoteInput) (*entity.QuoteRequest, error) {
	if input.Status != "quoted" && input.Status != "declined" {
		return nil, errors.BadRequest("Status must be quoted or declined", nil)
	}
	if input.Status == "quoted" && input.QuotedAmount <= 0 {
		return nil, errors.BadRequest("Quoted amount is required", nil)
	}

	quote, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	storefront, err := uc.storefrontRepo.GetByID(ctx, quote.StorefrontID)
	if err != nil {
		return nil, errors.NotFound("Storefront", err)
	}
	if storefront.OwnerID != providerID {
		return nil, errors.NotFound("Quote request", nil)
	}

	if quote.Status != "pending" {
		return nil, errors.Conflict("Quote request has already been answered", nil)
	}

	now := time.Now()
	quote.Status = input.Status
	quote.QuotedAmount = input.QuotedAmount
	quote.ProviderReply = input.Reply
	quote.RespondedAt = &now

	if err := uc.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

func (uc *QuoteUseCase) GetByID(ctx context.Context, userID, quoteID string) (*entity.QuoteRequest, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if quote.UserID == userID {
		return quote, nil
	}
	storefront, err := uc.storefrontRepo.GetByID(ctx, quote.StorefrontID)
	if err == nil && storefront.OwnerID == userID {
		return quote, nil
	}

	return nil, errors.NotFound("Quote request", nil)
}
