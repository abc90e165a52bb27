package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupCategoryRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	categoryHandler := handler.GetCategoryHandler()

	// Public catalog
	e.GET("/v1/categories", categoryHandler.List)
	e.GET("/v1/categories/:slug", categoryHandler.Get)

	// Admin management
	admin := e.Group("/v1/admin/categories")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("", categoryHandler.Create)
	admin.PATCH("/:id", categoryHandler.Update)
	admin.DELETE("/:id", categoryHandler.Delete)
}
