package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)

	favorites.GET("", favoriteHandler.List)
	favorites.GET("/count", favoriteHandler.Count)
	favorites.POST("/:storefrontId", favoriteHandler.Add)
	favorites.GET("/:storefrontId", favoriteHandler.Check)
	favorites.DELETE("/:storefrontId", favoriteHandler.Remove)
}
