package router

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"
)

func SetupDashboardRouter(e *echo.Echo, dashboardHandler *handler.DashboardHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/v1/dashboard", dashboardHandler.GetStats, authMiddleware.Authenticate)
}
