package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ritian-app/kiosk-backend/internal/blobstore"
	"github.com/ritian-app/kiosk-backend/internal/model"
	"github.com/ritian-app/kiosk-backend/internal/repository"
)

var ErrNotFound = errors.New("not found")
var ErrInvalidPIN = errors.New("invalid pin format")
var ErrInvalidInput = errors.New("invalid input")

var pinPattern = regexp.MustCompile(`^[0-9]{3}$`)

// DeletedXeroxOrder is what a xerox-order delete reports back: enough for
// the caller to make the follow-up blob-delete call. The document delete and
// the blob delete are deliberately separate, non-transactional steps.
type DeletedXeroxOrder struct {
	UserID   *string
	FileName string
}

type OrderService interface {
	ListArcadeOrders(ctx context.Context) ([]model.Purchase, error)
	ListStationeryOrders(ctx context.Context) ([]model.Purchase, error)
	FindStationeryOrderByPIN(ctx context.Context, pin string) (*model.Purchase, error)
	DeleteStationeryOrder(ctx context.Context, orderID string) error
	DeleteXeroxOrder(ctx context.Context, orderID string) (*DeletedXeroxOrder, error)
	// DeleteXeroxFile removes the blob for a purchase file and returns the
	// path actually deleted, which may differ from the requested one when
	// the fallback search matched.
	DeleteXeroxFile(ctx context.Context, userID, fileName string) (string, error)
	// XeroxDownloadURL resolves orders/{orderID} to its stored file URL.
	XeroxDownloadURL(ctx context.Context, orderID string) (string, error)
}

type orderService struct {
	purchases repository.PurchaseRepository
	blobs     blobstore.BlobStore
}

func NewOrderService(purchases repository.PurchaseRepository, blobs blobstore.BlobStore) OrderService {
	return &orderService{purchases: purchases, blobs: blobs}
}

func (s *orderService) ListArcadeOrders(ctx context.Context) ([]model.Purchase, error) {
	userIDs, err := s.purchases.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]model.Purchase, 0)
	for _, uid := range userIDs {
		list, err := s.purchases.QueryByType(ctx, uid, model.PurchaseTypeArcade)
		if err != nil {
			return nil, err
		}
		orders = append(orders, list...)
	}
	return orders, nil
}

func (s *orderService) ListStationeryOrders(ctx context.Context) ([]model.Purchase, error) {
	userIDs, err := s.purchases.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]model.Purchase, 0)
	for _, uid := range userIDs {
		list, err := s.purchases.QueryStationery(ctx, uid)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			if !p.IsStationery() {
				continue
			}
			orders = append(orders, p)
		}
	}
	return orders, nil
}

func (s *orderService) FindStationeryOrderByPIN(ctx context.Context, pin string) (*model.Purchase, error) {
	if !pinPattern.MatchString(pin) {
		return nil, ErrInvalidPIN
	}
	userIDs, err := s.purchases.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	// PINs are not unique by construction; the first hit in user enumeration
	// order wins.
	for _, uid := range userIDs {
		list, err := s.purchases.QueryStationeryByPIN(ctx, uid, pin)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			if p.IsStationery() {
				found := p
				return &found, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (s *orderService) DeleteStationeryOrder(ctx context.Context, orderID string) error {
	userIDs, err := s.purchases.ListUserIDs(ctx)
	if err != nil {
		return err
	}
	for _, uid := range userIDs {
		p, err := s.purchases.GetNested(ctx, uid, orderID)
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}
		return s.purchases.DeleteNested(ctx, uid, orderID)
	}
	return ErrNotFound
}

// DeleteXeroxOrder locates the order across the three possible storage
// locations and deletes the document. Probe order is fixed: flat purchases,
// flat orders, then every user's subcollection; when the same ID exists in
// more than one location, the first collection probed wins. The associated
// blob is NOT deleted here; the response carries user_id and file_name so the
// caller can make the separate delete_xerox_file call.
func (s *orderService) DeleteXeroxOrder(ctx context.Context, orderID string) (*DeletedXeroxOrder, error) {
	for _, col := range []string{repository.CollectionPurchases, repository.CollectionOrders} {
		p, err := s.purchases.GetFlat(ctx, col, orderID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		var fileName, fileURL string
		if p.XeroxDetails != nil {
			fileName = p.XeroxDetails.FileName
			fileURL = p.XeroxDetails.FileURL
		}
		// Flat documents do not record their owner; recover it from the
		// file URL when possible, report it as absent otherwise.
		var userID *string
		if owner := OwnerIDFromFileURL(fileURL); owner != "" {
			userID = &owner
		}
		if err := s.purchases.DeleteFlat(ctx, col, orderID); err != nil {
			return nil, err
		}
		return &DeletedXeroxOrder{UserID: userID, FileName: fileName}, nil
	}

	userIDs, err := s.purchases.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, uid := range userIDs {
		p, err := s.purchases.GetNested(ctx, uid, orderID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		var fileName string
		if p.XeroxDetails != nil {
			fileName = p.XeroxDetails.FileName
		}
		if err := s.purchases.DeleteNested(ctx, uid, orderID); err != nil {
			return nil, err
		}
		owner := uid
		return &DeletedXeroxOrder{UserID: &owner, FileName: fileName}, nil
	}
	return nil, ErrNotFound
}

func (s *orderService) DeleteXeroxFile(ctx context.Context, userID, fileName string) (string, error) {
	path := fmt.Sprintf("users/%s/purchases/%s", userID, fileName)
	exists, err := s.blobs.Exists(ctx, path)
	if err != nil {
		return "", err
	}
	if !exists {
		// Fallback for blobs stored off the expected convention: scan the
		// user's purchase-file namespace for a name containing fileName.
		names, err := s.blobs.List(ctx, fmt.Sprintf("users/%s/purchases/", userID))
		if err != nil {
			return "", err
		}
		found := ""
		for _, name := range names {
			if strings.Contains(name, fileName) {
				found = name
				break
			}
		}
		if found == "" {
			return "", ErrNotFound
		}
		path = found
	}
	if err := s.blobs.Delete(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *orderService) XeroxDownloadURL(ctx context.Context, orderID string) (string, error) {
	p, err := s.purchases.GetFlat(ctx, repository.CollectionOrders, orderID)
	if err != nil {
		return "", err
	}
	if p == nil || p.XeroxDetails == nil || p.XeroxDetails.FileURL == "" {
		return "", ErrNotFound
	}
	return p.XeroxDetails.FileURL, nil
}
