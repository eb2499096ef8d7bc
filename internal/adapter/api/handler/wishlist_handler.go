package handler

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type addToWishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	uid := c.Get("uid").(string)

	items, err := h.wishlistUseCase.GetWishlist(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	var req addToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	items, err := h.wishlistUseCase.AddToWishlist(c.Request().Context(), uid, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, items)
}

func (h *WishlistHandler) CheckWishlist(c echo.Context) error {
	uid := c.Get("uid").(string)
	productID := c.Param("productId")

	saved, err := h.wishlistUseCase.IsInWishlist(c.Request().Context(), uid, productID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"productId":  productID,
		"inWishlist": saved,
	})
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	uid := c.Get("uid").(string)

	items, err := h.wishlistUseCase.RemoveFromWishlist(c.Request().Context(), uid, c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}
