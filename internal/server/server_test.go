package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ritian-app/kiosk-backend/internal/model"
	"github.com/ritian-app/kiosk-backend/internal/service"
	"github.com/ritian-app/kiosk-backend/internal/upload"
)

// stubOrderService returns canned results so the tests pin down routing and
// status-code mapping without a live store.
type stubOrderService struct {
	orders    map[string]*service.DeletedXeroxOrder
	pinOrders map[string]*model.Purchase
	files     map[string]string // "uid/file" -> deleted path
	download  map[string]string
}

func (s *stubOrderService) ListArcadeOrders(ctx context.Context) ([]model.Purchase, error) {
	return []model.Purchase{}, nil
}

func (s *stubOrderService) ListStationeryOrders(ctx context.Context) ([]model.Purchase, error) {
	return []model.Purchase{}, nil
}

func (s *stubOrderService) FindStationeryOrderByPIN(ctx context.Context, pin string) (*model.Purchase, error) {
	if len(pin) != 3 || strings.Trim(pin, "0123456789") != "" {
		return nil, service.ErrInvalidPIN
	}
	if p, ok := s.pinOrders[pin]; ok {
		return p, nil
	}
	return nil, service.ErrNotFound
}

func (s *stubOrderService) DeleteStationeryOrder(ctx context.Context, orderID string) error {
	if _, ok := s.orders[orderID]; !ok {
		return service.ErrNotFound
	}
	delete(s.orders, orderID)
	return nil
}

func (s *stubOrderService) DeleteXeroxOrder(ctx context.Context, orderID string) (*service.DeletedXeroxOrder, error) {
	res, ok := s.orders[orderID]
	if !ok {
		return nil, service.ErrNotFound
	}
	delete(s.orders, orderID)
	return res, nil
}

func (s *stubOrderService) DeleteXeroxFile(ctx context.Context, userID, fileName string) (string, error) {
	path, ok := s.files[userID+"/"+fileName]
	if !ok {
		return "", service.ErrNotFound
	}
	return path, nil
}

func (s *stubOrderService) XeroxDownloadURL(ctx context.Context, orderID string) (string, error) {
	url, ok := s.download[orderID]
	if !ok {
		return "", service.ErrNotFound
	}
	return url, nil
}

type stubProductService struct {
	createCalls int
	created     *model.StationeryProduct
}

func (s *stubProductService) Create(ctx context.Context, name, category string, price float64, image *service.ProductImage) (*model.StationeryProduct, error) {
	s.createCalls++
	if price < 0 {
		return nil, service.ErrInvalidInput
	}
	s.created = &model.StationeryProduct{ID: "p1", Name: name, Category: category, Price: price, IsInStock: true}
	return s.created, nil
}

func (s *stubProductService) List(ctx context.Context) ([]model.StationeryProduct, error) {
	return nil, nil
}

func (s *stubProductService) UpdateStock(ctx context.Context, id string, isInStock bool) error {
	return service.ErrNotFound
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return service.ErrNotFound
}

func newTestServer(t *testing.T, orders *stubOrderService, products *stubProductService) *Server {
	t.Helper()
	uploads, err := upload.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("upload store: %v", err)
	}
	return New(orders, products, uploads)
}

func doRequest(t *testing.T, srv *Server, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func TestFetchStationeryOrderByPIN_Statuses(t *testing.T) {
	uid := "u1"
	orders := &stubOrderService{
		pinOrders: map[string]*model.Purchase{
			"314": {OrderID: "o1", UserID: uid, PIN: "314", StationeryItems: []model.StationeryItem{{Name: "pen"}}},
		},
	}
	srv := newTestServer(t, orders, &stubProductService{})

	tests := []struct {
		pin  string
		want int
	}{
		{"314", http.StatusOK},
		{"999", http.StatusNotFound},
		{"12", http.StatusBadRequest},
		{"abc", http.StatusBadRequest},
		{"1234", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := doRequest(t, srv, http.MethodGet, "/fetch_stationery_order_by_pin/"+tt.pin, nil, "")
		if rec.Code != tt.want {
			t.Fatalf("pin=%q status=%d want=%d body=%s", tt.pin, rec.Code, tt.want, rec.Body.String())
		}
		if tt.want != http.StatusOK && !strings.Contains(rec.Body.String(), "error") {
			t.Fatalf("pin=%q missing error body: %s", tt.pin, rec.Body.String())
		}
	}
}

func TestDeleteXeroxOrder_Response(t *testing.T) {
	uid := "u1"
	orders := &stubOrderService{
		orders: map[string]*service.DeletedXeroxOrder{
			"o1": {UserID: &uid, FileName: "doc.pdf"},
		},
	}
	srv := newTestServer(t, orders, &stubProductService{})

	rec := doRequest(t, srv, http.MethodDelete, "/delete_xerox_order/o1", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Message  string  `json:"message"`
		UserID   *string `json:"user_id"`
		FileName string  `json:"file_name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID == nil || *body.UserID != "u1" || body.FileName != "doc.pdf" {
		t.Fatalf("body=%+v", body)
	}

	// Deleted already, so the second call lands on 404.
	rec = doRequest(t, srv, http.MethodDelete, "/delete_xerox_order/o1", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d", rec.Code)
	}
}

func TestDeleteXeroxFile_ReportsActualPath(t *testing.T) {
	orders := &stubOrderService{
		files: map[string]string{"u1/doc.pdf": "users/u1/purchases/1699_doc.pdf"},
	}
	srv := newTestServer(t, orders, &stubProductService{})

	rec := doRequest(t, srv, http.MethodDelete, "/delete_xerox_file/u1/doc.pdf", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "users/u1/purchases/1699_doc.pdf") {
		t.Fatalf("body=%s want actual deleted path", rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodDelete, "/delete_xerox_file/u1/other.pdf", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want 404", rec.Code)
	}
}

func TestDownloadXerox_Redirect(t *testing.T) {
	orders := &stubOrderService{
		download: map[string]string{"o1": "https://firebasestorage.googleapis.com/v0/b/b/o/f?alt=media"},
	}
	srv := newTestServer(t, orders, &stubProductService{})

	rec := doRequest(t, srv, http.MethodGet, "/download_xerox/o1/doc.pdf", nil, "")
	if rec.Code != http.StatusFound {
		t.Fatalf("status=%d want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "alt=media") {
		t.Fatalf("location=%q", loc)
	}

	rec = doRequest(t, srv, http.MethodGet, "/download_xerox/missing/doc.pdf", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want 404", rec.Code)
	}
}

func TestPrintXerox_Stub(t *testing.T) {
	srv := newTestServer(t, &stubOrderService{}, &stubProductService{})

	rec := doRequest(t, srv, http.MethodGet, "/print_xerox/o1/doc.pdf", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Print initiated") {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func multipartForm(t *testing.T, fields map[string]string, fileField, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("fakedata")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestAddProduct_PriceValidation(t *testing.T) {
	t.Run("non-numeric price rejected before service", func(t *testing.T) {
		products := &stubProductService{}
		srv := newTestServer(t, &stubOrderService{}, products)

		body, ct := multipartForm(t, map[string]string{
			"product-name":     "Notebook",
			"product-category": "paper",
			"product-price":    "cheap",
		}, "", "")
		rec := doRequest(t, srv, http.MethodPost, "/add_product", body, ct)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
		if products.createCalls != 0 {
			t.Fatal("service called for non-numeric price")
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		products := &stubProductService{}
		srv := newTestServer(t, &stubOrderService{}, products)

		body, ct := multipartForm(t, map[string]string{
			"product-name":     "Notebook",
			"product-category": "paper",
			"product-price":    "-3",
		}, "", "")
		rec := doRequest(t, srv, http.MethodPost, "/add_product", body, ct)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("valid create", func(t *testing.T) {
		products := &stubProductService{}
		srv := newTestServer(t, &stubOrderService{}, products)

		body, ct := multipartForm(t, map[string]string{
			"product-name":     "Notebook",
			"product-category": "paper",
			"product-price":    "30",
		}, "product-image", "notebook.png")
		rec := doRequest(t, srv, http.MethodPost, "/add_product", body, ct)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
		if products.created == nil || products.created.Name != "Notebook" {
			t.Fatalf("created=%+v", products.created)
		}
	})
}

func TestUploadProfile(t *testing.T) {
	srv := newTestServer(t, &stubOrderService{}, &stubProductService{})

	t.Run("missing file part", func(t *testing.T) {
		body, ct := multipartForm(t, map[string]string{"unrelated": "x"}, "", "")
		rec := doRequest(t, srv, http.MethodPost, "/upload_profile", body, ct)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("bad extension", func(t *testing.T) {
		body, ct := multipartForm(t, nil, "profile-upload", "avatar.exe")
		rec := doRequest(t, srv, http.MethodPost, "/upload_profile", body, ct)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("accepted", func(t *testing.T) {
		body, ct := multipartForm(t, nil, "profile-upload", "avatar.png")
		rec := doRequest(t, srv, http.MethodPost, "/upload_profile", body, ct)
		if rec.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "avatar.png") {
			t.Fatalf("body=%s", rec.Body.String())
		}
	})
}
