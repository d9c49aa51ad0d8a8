package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ritian-app/kiosk-backend/internal/blobstore"
	"github.com/ritian-app/kiosk-backend/internal/model"
	"github.com/ritian-app/kiosk-backend/internal/repository"
	"github.com/ritian-app/kiosk-backend/internal/upload"
)

// ProductImage is an optional catalog image attached on create.
type ProductImage struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

type ProductService interface {
	Create(ctx context.Context, name, category string, price float64, image *ProductImage) (*model.StationeryProduct, error)
	List(ctx context.Context) ([]model.StationeryProduct, error)
	UpdateStock(ctx context.Context, id string, isInStock bool) error
	Delete(ctx context.Context, id string) error
}

type productService struct {
	products repository.ProductRepository
	blobs    blobstore.BlobStore
}

func NewProductService(products repository.ProductRepository, blobs blobstore.BlobStore) ProductService {
	return &productService{products: products, blobs: blobs}
}

// Create validates everything before touching either store, so a rejected
// request uploads no image and writes no document.
func (s *productService) Create(ctx context.Context, name, category string, price float64, image *ProductImage) (*model.StationeryProduct, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: product category is required", ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: product price must not be negative", ErrInvalidInput)
	}
	if image != nil && !upload.AllowedExtension(image.Filename) {
		return nil, fmt.Errorf("%w: invalid image file type", ErrInvalidInput)
	}

	p := &model.StationeryProduct{
		Name:      name,
		Category:  category,
		Price:     price,
		IsInStock: true,
		CreatedAt: time.Now(),
	}

	if image != nil {
		ext := strings.ToLower(filepath.Ext(image.Filename))
		path := fmt.Sprintf("stationery_products/%s%s", uuid.NewString(), ext)
		url, err := s.blobs.Upload(ctx, path, image.ContentType, image.Data)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	id, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (s *productService) List(ctx context.Context) ([]model.StationeryProduct, error) {
	return s.products.List(ctx)
}

func (s *productService) UpdateStock(ctx context.Context, id string, isInStock bool) error {
	exists, err := s.products.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.products.UpdateStock(ctx, id, isInStock)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	exists, err := s.products.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.products.Delete(ctx, id)
}
