package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/infrastructure/firebase"
	"nuptio/pkg/response"
)

// DevTokenHandler mints tokens for local testing without going through the
// full email/password flow. Only mounted outside production.
type DevTokenHandler struct {
	authClient *firebase.FirebaseAuthClient
	issuer     *firebase.DevTokenIssuer
}

func NewDevTokenHandler(authClient *firebase.FirebaseAuthClient, issuer *firebase.DevTokenIssuer) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
		issuer:     issuer,
	}
}

// LongLivedToken exchanges a UID for a real Firebase ID token, handy for
// manual API poking with curl.
func (h *DevTokenHandler) LongLivedToken(c echo.Context) error {
	var req struct {
		UID string `json:"uid" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.authClient.GenerateLongLivedToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"token": token})
}

// LocalToken signs an HS256 dev token that skips Firebase entirely.
func (h *DevTokenHandler) LocalToken(c echo.Context) error {
	var req struct {
		UID string `json:"uid" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.issuer.Issue(req.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"token": token})
}
