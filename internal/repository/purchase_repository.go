package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ritian-app/kiosk-backend/internal/model"
)

// Flat top-level collections that may hold a purchase document in addition
// to the per-user users/{uid}/purchases subcollection. Legacy data lives in
// both shapes.
const (
	CollectionPurchases = "purchases"
	CollectionOrders    = "orders"
)

type PurchaseRepository interface {
	// ListUserIDs enumerates every document ID in the users collection, in
	// whatever order the store returns them.
	ListUserIDs(ctx context.Context) ([]string, error)
	// GetFlat reads {collection}/{orderID}. Returns (nil, nil) when absent.
	GetFlat(ctx context.Context, collection, orderID string) (*model.Purchase, error)
	// GetNested reads users/{userID}/purchases/{orderID}. Returns (nil, nil)
	// when absent.
	GetNested(ctx context.Context, userID, orderID string) (*model.Purchase, error)
	DeleteFlat(ctx context.Context, collection, orderID string) error
	DeleteNested(ctx context.Context, userID, orderID string) error
	// QueryByType lists one user's purchases where type == purchaseType.
	QueryByType(ctx context.Context, userID, purchaseType string) ([]model.Purchase, error)
	// QueryStationery lists one user's purchases where stationeryItems is
	// present (non-null).
	QueryStationery(ctx context.Context, userID string) ([]model.Purchase, error)
	// QueryStationeryByPIN lists one user's purchases where pin == pin and
	// stationeryItems is present.
	QueryStationeryByPIN(ctx context.Context, userID, pin string) ([]model.Purchase, error)
}

type purchaseRepository struct {
	client *firestore.Client
}

func NewPurchaseRepository(client *firestore.Client) PurchaseRepository {
	return &purchaseRepository{client: client}
}

func (r *purchaseRepository) users() *firestore.CollectionRef {
	return r.client.Collection("users")
}

func (r *purchaseRepository) nested(userID string) *firestore.CollectionRef {
	return r.users().Doc(userID).Collection("purchases")
}

func (r *purchaseRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.users().Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, doc.Ref.ID)
	}
	return ids, nil
}

func (r *purchaseRepository) GetFlat(ctx context.Context, collection, orderID string) (*model.Purchase, error) {
	return docToPurchase(r.client.Collection(collection).Doc(orderID).Get(ctx))
}

func (r *purchaseRepository) GetNested(ctx context.Context, userID, orderID string) (*model.Purchase, error) {
	p, err := docToPurchase(r.nested(userID).Doc(orderID).Get(ctx))
	if p != nil {
		p.UserID = userID
	}
	return p, err
}

func (r *purchaseRepository) DeleteFlat(ctx context.Context, collection, orderID string) error {
	_, err := r.client.Collection(collection).Doc(orderID).Delete(ctx)
	return err
}

func (r *purchaseRepository) DeleteNested(ctx context.Context, userID, orderID string) error {
	_, err := r.nested(userID).Doc(orderID).Delete(ctx)
	return err
}

func (r *purchaseRepository) QueryByType(ctx context.Context, userID, purchaseType string) ([]model.Purchase, error) {
	q := r.nested(userID).Where("type", "==", purchaseType)
	return r.queryPurchases(ctx, userID, q)
}

func (r *purchaseRepository) QueryStationery(ctx context.Context, userID string) ([]model.Purchase, error) {
	q := r.nested(userID).Where("stationeryItems", "!=", nil)
	return r.queryPurchases(ctx, userID, q)
}

func (r *purchaseRepository) QueryStationeryByPIN(ctx context.Context, userID, pin string) ([]model.Purchase, error) {
	q := r.nested(userID).Where("pin", "==", pin).Where("stationeryItems", "!=", nil)
	return r.queryPurchases(ctx, userID, q)
}

func (r *purchaseRepository) queryPurchases(ctx context.Context, userID string, q firestore.Query) ([]model.Purchase, error) {
	var out []model.Purchase
	iter := q.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p model.Purchase
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		p.OrderID = doc.Ref.ID
		p.UserID = userID
		out = append(out, p)
	}
	return out, nil
}

// docToPurchase maps a point read to (*Purchase, error), folding the store's
// NotFound into (nil, nil).
func docToPurchase(doc *firestore.DocumentSnapshot, err error) (*model.Purchase, error) {
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var p model.Purchase
	if err := doc.DataTo(&p); err != nil {
		return nil, err
	}
	p.OrderID = doc.Ref.ID
	return &p, nil
}
