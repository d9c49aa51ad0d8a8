package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ritian-app/kiosk-backend/internal/model"
	"github.com/ritian-app/kiosk-backend/internal/service"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// StationeryOrderResponse is the fixed projection returned for stationery
// order listings and PIN lookups.
type StationeryOrderResponse struct {
	OrderID         string                 `json:"order_id"`
	PIN             string                 `json:"pin"`
	StationeryItems []model.StationeryItem `json:"stationeryItems"`
	TotalCost       float64                `json:"totalCost"`
	Timestamp       time.Time              `json:"timestamp"`
}

func toStationeryOrderResponse(p *model.Purchase) StationeryOrderResponse {
	return StationeryOrderResponse{
		OrderID:         p.OrderID,
		PIN:             p.PIN,
		StationeryItems: p.StationeryItems,
		TotalCost:       p.TotalCost,
		Timestamp:       p.Timestamp,
	}
}

type DeleteXeroxOrderResponse struct {
	Message  string  `json:"message"`
	UserID   *string `json:"user_id"`
	FileName string  `json:"file_name"`
}

type DeleteXeroxFileResponse struct {
	Message string `json:"message"`
}

func (h *OrderHandler) FetchArcadeOrders(c echo.Context) error {
	orders, err := h.svc.ListArcadeOrders(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch arcade orders: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) FetchStationeryOrders(c echo.Context) error {
	orders, err := h.svc.ListStationeryOrders(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch stationery orders: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	resp := make([]StationeryOrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toStationeryOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) FetchStationeryOrderByPIN(c echo.Context) error {
	pin := c.Param("pin")
	p, err := h.svc.FindStationeryOrderByPIN(c.Request().Context(), pin)
	if err != nil {
		switch err {
		case service.ErrInvalidPIN:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "Invalid PIN format"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "Order not found"))
		default:
			c.Logger().Errorf("fetch order by pin: %v", err)
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toStationeryOrderResponse(p))
}

func (h *OrderHandler) DeleteStationeryOrder(c echo.Context) error {
	orderID := c.Param("order_id")
	if err := h.svc.DeleteStationeryOrder(c.Request().Context(), orderID); err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "Order not found"))
		}
		c.Logger().Errorf("delete stationery order: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "Order deleted successfully"})
}

func (h *OrderHandler) DeleteXeroxOrder(c echo.Context) error {
	orderID := c.Param("order_id")
	res, err := h.svc.DeleteXeroxOrder(c.Request().Context(), orderID)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "Order not found"))
		}
		c.Logger().Errorf("delete xerox order: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	// The blob is not deleted here; user_id and file_name give the caller
	// what it needs for the separate delete_xerox_file call.
	return c.JSON(http.StatusOK, DeleteXeroxOrderResponse{
		Message:  "Order deleted successfully",
		UserID:   res.UserID,
		FileName: res.FileName,
	})
}

func (h *OrderHandler) DeleteXeroxFile(c echo.Context) error {
	userID := c.Param("user_id")
	fileName := c.Param("file_name")
	path, err := h.svc.DeleteXeroxFile(c.Request().Context(), userID, fileName)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "File not found in storage"))
		}
		c.Logger().Errorf("delete xerox file: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, DeleteXeroxFileResponse{
		Message: "File deleted successfully from path: " + path,
	})
}

func (h *OrderHandler) DownloadXerox(c echo.Context) error {
	orderID := c.Param("order_id")
	url, err := h.svc.XeroxDownloadURL(c.Request().Context(), orderID)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "File not found"))
		}
		c.Logger().Errorf("download xerox: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.Redirect(http.StatusFound, url)
}

// PrintXerox is a stub: it acknowledges the request without touching any
// store.
func (h *OrderHandler) PrintXerox(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":     "Print initiated",
		"order_id":   c.Param("order_id"),
		"order_name": c.Param("order_name"),
	})
}
