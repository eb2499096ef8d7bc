package router

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware) {
	wishlistGroup := e.Group("/v1/wishlist")
	wishlistGroup.Use(authMiddleware.Authenticate)

	wishlistGroup.GET("", wishlistHandler.GetWishlist)
	wishlistGroup.POST("", wishlistHandler.AddToWishlist)
	wishlistGroup.GET("/:productId", wishlistHandler.CheckWishlist)
	wishlistGroup.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
}
