package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/domain/repository"
)

// AdminMiddleware restricts a route group to admin accounts. Runs after
// Authenticate.
type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		if user.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}

		return next(c)
	}
}

// ProviderMiddleware restricts a route group to provider (or admin)
// accounts. Runs after Authenticate.
type ProviderMiddleware struct {
	userRepo repository.UserRepository
}

func NewProviderMiddleware(userRepo repository.UserRepository) *ProviderMiddleware {
	return &ProviderMiddleware{
		userRepo: userRepo,
	}
}

func (m *ProviderMiddleware) ProviderOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		if user.Role != "provider" && user.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Provider access required")
		}

		return next(c)
	}
}
