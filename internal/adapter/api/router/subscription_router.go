package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupSubscriptionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, providerMiddleware *middleware.ProviderMiddleware) {
	subscriptionHandler := handler.GetSubscriptionHandler()

	subscriptions := e.Group("/v1/subscriptions")
	subscriptions.Use(authMiddleware.Authenticate)
	subscriptions.Use(providerMiddleware.ProviderOnly)

	subscriptions.POST("", subscriptionHandler.Subscribe)
	subscriptions.GET("", subscriptionHandler.ListMine)
	subscriptions.POST("/:id/cancel", subscriptionHandler.Cancel)
	subscriptions.GET("/:id/invoices", subscriptionHandler.ListInvoices)
}
