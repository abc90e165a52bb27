package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
	"nuptio/internal/adapter/api/middleware"
)

func SetupConversationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	conversationHandler := handler.GetConversationHandler()

	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.POST("", conversationHandler.Start, rateLimitMiddleware.Limit("start_conversation"))
	conversations.GET("", conversationHandler.List)
	conversations.GET("/:id/messages", conversationHandler.ListMessages)
	conversations.PUT("/:id/read", conversationHandler.MarkRead)
	conversations.POST("/:id/messages", conversationHandler.Reply, rateLimitMiddleware.Limit("send_message"))

	// Provider inbox per storefront
	inbox := e.Group("/v1/my-storefronts/:storefrontId/conversations")
	inbox.Use(authMiddleware.Authenticate)
	inbox.GET("", conversationHandler.ListForStorefront)
}
