package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nuptio/internal/usecase"
	"nuptio/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	Username    string     `json:"username" validate:"omitempty,min=3"`
	Phone       string     `json:"phone" validate:"omitempty,e164"`
	FullName    string     `json:"full_name"`
	City        string     `json:"city"`
	AvatarURL   string     `json:"avatar_url" validate:"omitempty,url"`
	WeddingDate *time.Time `json:"wedding_date"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Username:    req.Username,
		Phone:       req.Phone,
		FullName:    req.FullName,
		City:        req.City,
		AvatarURL:   req.AvatarURL,
		WeddingDate: req.WeddingDate,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) BecomeProvider(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.BecomeProvider(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.ChangePassword(c.Request().Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *UserHandler) ListSearchHistory(c echo.Context) error {
	uid := c.Get("uid").(string)

	entries, err := h.userUseCase.ListSearchHistory(c.Request().Context(), uid, 20)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}

func (h *UserHandler) ClearSearchHistory(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.userUseCase.ClearSearchHistory(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}
