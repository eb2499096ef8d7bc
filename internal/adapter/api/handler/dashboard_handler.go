package handler

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

func (h *DashboardHandler) GetStats(c echo.Context) error {
	uid := c.Get("uid").(string)

	stats, err := h.dashboardUseCase.Stats(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}
