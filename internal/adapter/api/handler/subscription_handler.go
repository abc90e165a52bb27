package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/response"
)

type SubscriptionHandler struct {
	subscriptionUseCase *usecase.SubscriptionUseCase
}

func NewSubscriptionHandler(subscriptionUseCase *usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
	}
}

func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		StorefrontID string `json:"storefront_id" validate:"required"`
		Plan         string `json:"plan" validate:"required,oneof=basic premium elite"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.subscriptionUseCase.Subscribe(c.Request().Context(), uid, usecase.SubscribeInput{
		StorefrontID: req.StorefrontID,
		Plan:         req.Plan,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *SubscriptionHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)

	subscriptions, err := h.subscriptionUseCase.ListMine(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, subscriptions)
}

func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	uid := c.Get("uid").(string)

	subscription, err := h.subscriptionUseCase.Cancel(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, subscription)
}

func (h *SubscriptionHandler) ListInvoices(c echo.Context) error {
	uid := c.Get("uid").(string)

	invoices, err := h.subscriptionUseCase.ListInvoices(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, invoices)
}
