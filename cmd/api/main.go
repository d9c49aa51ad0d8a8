package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/ritian-app/kiosk-backend/internal/blobstore/gcs"
	"github.com/ritian-app/kiosk-backend/internal/config"
	"github.com/ritian-app/kiosk-backend/internal/db"
	"github.com/ritian-app/kiosk-backend/internal/repository"
	"github.com/ritian-app/kiosk-backend/internal/server"
	"github.com/ritian-app/kiosk-backend/internal/service"
	"github.com/ritian-app/kiosk-backend/internal/upload"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	clients, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("store connect error: %v", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			log.Printf("close clients: %v", err)
		}
	}()

	blobs := gcs.New(clients.Bucket, cfg.StorageBucket)
	purchaseRepo := repository.NewPurchaseRepository(clients.Firestore)
	productRepo := repository.NewProductRepository(clients.Firestore)

	orderSvc := service.NewOrderService(purchaseRepo, blobs)
	productSvc := service.NewProductService(productRepo, blobs)

	uploads, err := upload.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store error: %v", err)
	}

	srv := server.New(orderSvc, productSvc, uploads)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
