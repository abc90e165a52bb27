package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupQuoteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, providerMiddleware *middleware.ProviderMiddleware) {
	quoteHandler := handler.GetQuoteHandler()

	quotes := e.Group("/v1/quotes")
	quotes.Use(authMiddleware.Authenticate)

	quotes.POST("", quoteHandler.Create)
	quotes.GET("", quoteHandler.ListMine)
	quotes.GET("/:id", quoteHandler.Get)

	// Provider side: inbox per storefront plus responding.
	provider := e.Group("/v1/my-storefronts/:storefrontId/quotes")
	provider.Use(authMiddleware.Authenticate)
	provider.Use(providerMiddleware.ProviderOnly)
	provider.GET("", quoteHandler.ListForStorefront)

	respond := e.Group("/v1/quotes/:id/respond")
	respond.Use(authMiddleware.Authenticate)
	respond.Use(providerMiddleware.ProviderOnly)
	respond.POST("", quoteHandler.Respond)
}
