package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.POST("/me/become-provider", userHandler.BecomeProvider)
	users.POST("/me/change-password", userHandler.ChangePassword)
	users.GET("/me/search-history", userHandler.ListSearchHistory)
	users.DELETE("/me/search-history", userHandler.ClearSearchHistory)
}
