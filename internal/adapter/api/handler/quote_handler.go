package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/response"
	"nuptio/pkg/utils"
)

type QuoteHandler struct {
	quoteUseCase *usecase.QuoteUseCase
}

func NewQuoteHandler(quoteUseCase *usecase.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{
		quoteUseCase: quoteUseCase,
	}
}

type createQuoteRequest struct {
	StorefrontID     string     `json:"storefront_id" validate:"required"`
	EventDate        *time.Time `json:"event_date"`
	GuestCount       int        `json:"guest_count" validate:"omitempty,min=1"`
	Budget           float64    `json:"budget" validate:"omitempty,min=0"`
	Message          string     `json:"message"`
	OpenConversation bool       `json:"open_conversation"`
}

func (h *QuoteHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quote, err := h.quoteUseCase.Create(c.Request().Context(), uid, usecase.CreateQuoteRequestInput{
		StorefrontID:     req.StorefrontID,
		EventDate:        req.EventDate,
		GuestCount:       req.GuestCount,
		Budget:           req.Budget,
		Message:          req.Message,
		OpenConversation: req.OpenConversation,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, quote)
}

func (h *QuoteHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	quotes, total, err := h.quoteUseCase.ListMine(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, quotes, total, params.Page, params.PageSize)
}

func (h *QuoteHandler) ListForStorefront(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	quotes, total, err := h.quoteUseCase.ListForStorefront(
		c.Request().Context(), uid, c.Param("storefrontId"), c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, quotes, total, params.Page, params.PageSize)
}

func (h *QuoteHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	quote, err := h.quoteUseCase.GetByID(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quote)
}

func (h *QuoteHandler) Respond(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Status       string  `json:"status" validate:"required,oneof=quoted declined"`
		QuotedAmount float64 `json:"quoted_amount" validate:"omitempty,min=0"`
		Reply        string  `json:"reply"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quote, err := h.quoteUseCase.Respond(c.Request().Context(), uid, c.Param("id"), usecase.RespondToQuoteInput{
		Status:       req.Status,
		QuotedAmount: req.QuotedAmount,
		Reply:        req.Reply,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, quote)
}
