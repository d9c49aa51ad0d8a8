package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ritian-app/kiosk-backend/internal/upload"
)

type UploadHandler struct {
	store *upload.LocalStore
}

func NewUploadHandler(store *upload.LocalStore) *UploadHandler {
	return &UploadHandler{store: store}
}

type UploadResponse struct {
	Filename string `json:"filename"`
}

func (h *UploadHandler) UploadProfile(c echo.Context) error {
	return h.save(c, "profile-upload", upload.PurposeProfile)
}

func (h *UploadHandler) UploadLogo(c echo.Context) error {
	return h.save(c, "logo-upload", upload.PurposeLogo)
}

func (h *UploadHandler) save(c echo.Context, field, purpose string) error {
	fh, err := c.FormFile(field)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "No file part"))
	}
	if fh.Filename == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "No selected file"))
	}
	if !upload.AllowedExtension(fh.Filename) {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "Invalid file type"))
	}

	src, err := fh.Open()
	if err != nil {
		c.Logger().Errorf("upload %s: open: %v", purpose, err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	defer src.Close()

	name, err := h.store.Save(purpose, fh.Filename, src)
	if err != nil {
		c.Logger().Errorf("upload %s: save: %v", purpose, err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, UploadResponse{Filename: name})
}
