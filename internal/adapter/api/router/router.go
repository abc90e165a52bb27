package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	providerMiddleware *middleware.ProviderMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupCategoryRouter(e, authMiddleware, adminMiddleware)
	SetupStorefrontRouter(e, authMiddleware, adminMiddleware, providerMiddleware)
	SetupFavoriteRouter(e, authMiddleware)
	SetupQuoteRouter(e, authMiddleware, providerMiddleware)
	SetupSubscriptionRouter(e, authMiddleware, providerMiddleware)
	SetupConversationRouter(e, authMiddleware, rateLimitMiddleware)
	SetupMediaRouter(e, authMiddleware, providerMiddleware)
}
