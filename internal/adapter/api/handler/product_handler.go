package handler

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/domain/repository"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	chatUseCase    *usecase.ChatUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase, chatUseCase *usecase.ChatUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		chatUseCase:    chatUseCase,
	}
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=120"`
	Price       float64  `json:"price" validate:"gt=0"`
	Description string   `json:"description" validate:"max=2000"`
	Category    string   `json:"category" validate:"required"`
	ImageURLs   []string `json:"imageUrls" validate:"max=8,dive,url"`
}

type contactSellerRequest struct {
	Message string `json:"message" validate:"max=2000"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	product, err := h.productUseCase.CreateProduct(c.Request().Context(), uid, usecase.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	filter := repository.ProductFilter{
		Category: c.QueryParam("category"),
		Query:    c.QueryParam("q"),
		SellerID: c.QueryParam("seller_id"),
	}

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

// ContactSeller starts (or reopens) the caller's conversation about the
// product with its seller.
func (h *ProductHandler) ContactSeller(c echo.Context) error {
	var req contactSellerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	conversation, err := h.chatUseCase.StartConversationForProduct(c.Request().Context(), uid, c.Param("id"), req.Message)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, usecase.NewConversationView(conversation, uid))
}
