package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/ritian-app/kiosk-backend/internal/blobstore"
)

// Store implements blobstore.BlobStore on a Cloud Storage bucket.
type Store struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func New(bucket *storage.BucketHandle, bucketName string) *Store {
	return &Store{bucket: bucket, bucketName: bucketName}
}

var _ blobstore.BlobStore = (*Store)(nil)

func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.bucket.Object(path).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	return s.bucket.Object(path).Delete(ctx)
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Upload writes the blob with a Firebase download token so the returned URL
// is publicly fetchable without signed-URL machinery.
func (s *Store) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	token := uuid.NewString()
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucketName, url.PathEscape(path), token)
	return publicURL, nil
}
