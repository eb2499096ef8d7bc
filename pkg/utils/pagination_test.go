package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/products?page=3&limit=10", nil)
	params := GetPaginationParams(e.NewContext(req, httptest.NewRecorder()))
	assert.Equal(t, PaginationParams{Page: 3, PageSize: 10, Offset: 20}, params)

	req = httptest.NewRequest(http.MethodGet, "/v1/products?page=-1&limit=500", nil)
	params = GetPaginationParams(e.NewContext(req, httptest.NewRecorder()))
	assert.Equal(t, PaginationParams{Page: 1, PageSize: 20, Offset: 0}, params)
}

func TestWindow(t *testing.T) {
	start, end := Window(5, 2, 2)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	start, end = Window(5, 10, 4)
	assert.Equal(t, 4, start)
	assert.Equal(t, 5, end)

	start, end = Window(5, 2, 9)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	start, end = Window(5, 0, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
}
