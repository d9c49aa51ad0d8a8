package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/ritian-app/kiosk-backend/internal/config"
)

// Clients bundles the Firestore and Cloud Storage handles the service
// depends on. Constructed once at startup and closed at shutdown.
type Clients struct {
	Firestore *firestore.Client
	Storage   *storage.Client
	Bucket    *storage.BucketHandle
}

func Connect(ctx context.Context, cfg *config.Config) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	sc, err := storage.NewClient(ctx, opts...)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("storage client: %w", err)
	}

	return &Clients{
		Firestore: fs,
		Storage:   sc,
		Bucket:    sc.Bucket(cfg.StorageBucket),
	}, nil
}

func (c *Clients) Close() error {
	var firstErr error
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			firstErr = err
		}
	}
	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
