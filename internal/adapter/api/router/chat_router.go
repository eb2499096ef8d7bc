package router

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"
)

// SetupChatRouter sets up the conversation routes (the websocket lives in
// SetupWebSocketRouter).
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.GET("", chatHandler.ListConversations)
	conversations.POST("", chatHandler.StartConversation)
	conversations.GET("/:id", chatHandler.GetConversation)
	conversations.POST("/:id/messages", chatHandler.SendMessage)
	conversations.PUT("/:id/read", chatHandler.MarkAsRead)
}
