package router

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"
	"nexusmarket/internal/infrastructure/ratelimit"
)

// Handlers groups the handlers that are constructed explicitly rather than
// through handler.Setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Chat      *handler.ChatHandler
	Wishlist  *handler.WishlistHandler
	Job       *handler.JobHandler
	Dashboard *handler.DashboardHandler
	WebSocket *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupUserRouter(e, authMiddleware)
	SetupProductRouter(e, authMiddleware)
	SetupWishlistRouter(e, h.Wishlist, authMiddleware)
	SetupJobRouter(e, h.Job, authMiddleware)
	SetupDashboardRouter(e, h.Dashboard, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket, authMiddleware)
}
