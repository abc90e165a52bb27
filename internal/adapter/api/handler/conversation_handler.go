package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/response"
	"nuptio/pkg/utils"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

func (h *ConversationHandler) Start(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		StorefrontID   string `json:"storefront_id" validate:"required"`
		InitialMessage string `json:"initial_message"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	conversation, err := h.conversationUseCase.StartConversation(c.Request().Context(), uid, usecase.StartConversationInput{
		StorefrontID:   req.StorefrontID,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ConversationHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c, 20)

	conversations, total, err := h.conversationUseCase.ListConversations(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, conversations, total, limit, offset)
}

// ListForStorefront is the provider inbox for one of their storefronts.
func (h *ConversationHandler) ListForStorefront(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c, 20)

	conversations, total, err := h.conversationUseCase.ListStorefrontConversations(
		c.Request().Context(), uid, c.Param("storefrontId"), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, conversations, total, limit, offset)
}

func (h *ConversationHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c, 50)

	messages, total, err := h.conversationUseCase.ListMessages(c.Request().Context(), uid, c.Param("id"), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, limit, offset)
}

func (h *ConversationHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.conversationUseCase.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

// Reply is the provider-side send. Buyers message over the socket; vendors
// answer from their dashboard through this endpoint.
func (h *ConversationHandler) Reply(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Content     string                 `json:"content" validate:"required"`
		MessageType string                 `json:"message_type" validate:"omitempty,oneof=text image file"`
		Metadata    map[string]interface{} `json:"metadata"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.conversationUseCase.SendProviderReply(c.Request().Context(), uid, c.Param("id"), usecase.ProviderReplyInput{
		Content:     req.Content,
		MessageType: req.MessageType,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
