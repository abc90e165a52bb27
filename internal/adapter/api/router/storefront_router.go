package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupStorefrontRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	providerMiddleware *middleware.ProviderMiddleware,
) {
	storefrontHandler := handler.GetStorefrontHandler()

	// Public browsing. OptionalAuthenticate so signed-in searches land in
	// the caller's history.
	e.GET("/v1/storefronts", storefrontHandler.Search, authMiddleware.OptionalAuthenticate)
	e.GET("/v1/storefronts/:id", storefrontHandler.Get, authMiddleware.OptionalAuthenticate)

	// Provider management
	mine := e.Group("/v1/my-storefronts")
	mine.Use(authMiddleware.Authenticate)
	mine.Use(providerMiddleware.ProviderOnly)

	mine.GET("", storefrontHandler.ListMine)
	mine.POST("", storefrontHandler.Create)
	mine.PATCH("/:id", storefrontHandler.Update)
	mine.DELETE("/:id", storefrontHandler.Delete)

	// Admin moderation
	admin := e.Group("/v1/admin/storefronts")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.PATCH("/:id/featured", storefrontHandler.SetFeatured)
	admin.PATCH("/:id/status", storefrontHandler.SetStatus)
}
