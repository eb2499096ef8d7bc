package router

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	protected := e.Group("/v1/products")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("", productHandler.CreateProduct)
	protected.POST("/:id/contact", productHandler.ContactSeller)
}
