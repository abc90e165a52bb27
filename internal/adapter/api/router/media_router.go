package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupMediaRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, providerMiddleware *middleware.ProviderMiddleware) {
	mediaHandler := handler.GetMediaHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.Use(providerMiddleware.ProviderOnly)

	files.POST("/upload", mediaHandler.Upload)
	files.POST("/signed-upload", mediaHandler.SignedUpload)
	files.DELETE("/:id", mediaHandler.Delete)

	storefrontFiles := e.Group("/v1/my-storefronts/:storefrontId/files")
	storefrontFiles.Use(authMiddleware.Authenticate)
	storefrontFiles.Use(providerMiddleware.ProviderOnly)
	storefrontFiles.GET("", mediaHandler.ListStorefrontFiles)
}
