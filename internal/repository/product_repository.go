package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ritian-app/kiosk-backend/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.StationeryProduct) (string, error)
	List(ctx context.Context) ([]model.StationeryProduct, error)
	// Exists reports whether stationery_products/{id} is present.
	Exists(ctx context.Context, id string) (bool, error)
	UpdateStock(ctx context.Context, id string, isInStock bool) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	client *firestore.Client
}

func NewProductRepository(client *firestore.Client) ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) col() *firestore.CollectionRef {
	return r.client.Collection("stationery_products")
}

func (r *productRepository) Create(ctx context.Context, p *model.StationeryProduct) (string, error) {
	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, p); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.StationeryProduct, error) {
	var out []model.StationeryProduct
	iter := r.col().Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p model.StationeryProduct
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

func (r *productRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id string, isInStock bool) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "isInStock", Value: isInStock},
	})
	return err
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
