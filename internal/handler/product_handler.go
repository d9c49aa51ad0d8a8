package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ritian-app/kiosk-backend/internal/model"
	"github.com/ritian-app/kiosk-backend/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// AddProduct accepts a multipart form: product-name, product-category,
// product-price, and an optional product-image file. The price must parse as
// a non-negative number before any upload or document write happens.
func (h *ProductHandler) AddProduct(c echo.Context) error {
	name := c.FormValue("product-name")
	category := c.FormValue("product-category")
	priceStr := c.FormValue("product-price")

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product price"))
	}

	var image *service.ProductImage
	if fh, err := c.FormFile("product-image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			c.Logger().Errorf("add product: open upload: %v", err)
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
		}
		defer src.Close()
		image = &service.ProductImage{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        src,
		}
	}

	p, err := h.svc.Create(c.Request().Context(), name, category, price, image)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
		c.Logger().Errorf("add product: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) FetchStationeryItems(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch stationery items: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	if items == nil {
		items = []model.StationeryProduct{}
	}
	return c.JSON(http.StatusOK, items)
}

type UpdateStockRequest struct {
	ID        string `json:"id"`
	IsInStock bool   `json:"isInStock"`
}

func (h *ProductHandler) UpdateStockStatus(c echo.Context) error {
	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.ID == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "product id is required"))
	}
	if err := h.svc.UpdateStock(c.Request().Context(), req.ID, req.IsInStock); err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "Product not found"))
		}
		c.Logger().Errorf("update stock status: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "Stock status updated"})
}

func (h *ProductHandler) DeleteStationeryItem(c echo.Context) error {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "Product not found"))
		}
		c.Logger().Errorf("delete stationery item: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "Product deleted successfully"})
}
