package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ritian-app/kiosk-backend/internal/handler"
	"github.com/ritian-app/kiosk-backend/internal/service"
	"github.com/ritian-app/kiosk-backend/internal/upload"
)

type Server struct {
	e *echo.Echo
}

func New(orderSvc service.OrderService, productSvc service.ProductService, uploads *upload.LocalStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	// The kiosk frontend is served from arbitrary origins; CORS is open.
	e.Use(middleware.CORS())

	orderHandler := handler.NewOrderHandler(orderSvc)
	productHandler := handler.NewProductHandler(productSvc)
	uploadHandler := handler.NewUploadHandler(uploads)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "kiosk-backend"})
	})

	e.GET("/fetch_arcade_orders", orderHandler.FetchArcadeOrders)
	e.GET("/fetch_stationery_orders", orderHandler.FetchStationeryOrders)
	e.GET("/fetch_stationery_order_by_pin/:pin", orderHandler.FetchStationeryOrderByPIN)
	e.DELETE("/delete_stationery_order/:order_id", orderHandler.DeleteStationeryOrder)
	e.DELETE("/delete_xerox_order/:order_id", orderHandler.DeleteXeroxOrder)
	e.DELETE("/delete_xerox_file/:user_id/:file_name", orderHandler.DeleteXeroxFile)
	e.GET("/download_xerox/:order_id/:order_name", orderHandler.DownloadXerox)
	e.GET("/print_xerox/:order_id/:order_name", orderHandler.PrintXerox)

	e.POST("/upload_profile", uploadHandler.UploadProfile)
	e.POST("/upload_logo", uploadHandler.UploadLogo)

	e.POST("/add_product", productHandler.AddProduct)
	e.GET("/fetch_stationery_items", productHandler.FetchStationeryItems)
	e.POST("/update_stock_status", productHandler.UpdateStockStatus)
	e.DELETE("/delete_stationery_item/:id", productHandler.DeleteStationeryItem)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Echo exposes the underlying echo instance, mainly for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
