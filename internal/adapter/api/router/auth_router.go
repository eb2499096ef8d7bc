package router

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"
	"nexusmarket/internal/infrastructure/ratelimit"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	// Public routes, throttled per address
	public := e.Group("/v1/auth")
	public.Use(middleware.RateLimitByIP(limiter, ratelimit.ActionAuth))
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/reset-password", authHandler.ResetPassword)

	// Protected routes
	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)
}
