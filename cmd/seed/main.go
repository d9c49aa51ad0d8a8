package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/joho/godotenv"

	"github.com/ritian-app/kiosk-backend/internal/config"
	"github.com/ritian-app/kiosk-backend/internal/db"
	"github.com/ritian-app/kiosk-backend/internal/model"
)

// Seeds a handful of users, purchases (nested and flat), and catalog
// products for manual testing against a dev project.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	clients, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("store connect error: %v", err)
	}
	defer clients.Close()

	fs := clients.Firestore
	now := time.Now()

	users := []string{cfg.DefaultUserID, "student_17", "student_42"}
	for _, uid := range users {
		if _, err := fs.Collection("users").Doc(uid).Set(ctx, map[string]interface{}{
			"createdAt": now,
		}); err != nil {
			log.Fatalf("seed user %s: %v", uid, err)
		}
	}

	fileURL := xeroxFileURL(cfg.StorageBucket, "student_17", "assignment.pdf")
	nested := []struct {
		uid string
		id  string
		p   model.Purchase
	}{
		{"student_17", "ord-arcade-1", model.Purchase{Type: model.PurchaseTypeArcade, TotalCost: 50, Timestamp: now}},
		{"student_17", "ord-xerox-1", model.Purchase{
			TotalCost: 12, Timestamp: now,
			XeroxDetails: &model.XeroxDetails{FileName: "assignment.pdf", FileURL: fileURL},
		}},
		{"student_42", "ord-stationery-1", model.Purchase{
			PIN: "314", TotalCost: 80, Timestamp: now,
			StationeryItems: []model.StationeryItem{
				{Name: "notebook", Quantity: 2, Price: 30},
				{Name: "pen", Quantity: 4, Price: 5},
			},
		}},
	}
	for _, n := range nested {
		ref := fs.Collection("users").Doc(n.uid).Collection("purchases").Doc(n.id)
		if _, err := ref.Set(ctx, &n.p); err != nil {
			log.Fatalf("seed purchase %s/%s: %v", n.uid, n.id, err)
		}
	}

	// One legacy flat record in each top-level collection.
	flat := model.Purchase{
		TotalCost: 8, Timestamp: now,
		XeroxDetails: &model.XeroxDetails{
			FileName: "handout.pdf",
			FileURL:  xeroxFileURL(cfg.StorageBucket, "student_42", "handout.pdf"),
		},
	}
	if _, err := fs.Collection("purchases").Doc("ord-flat-1").Set(ctx, &flat); err != nil {
		log.Fatalf("seed flat purchase: %v", err)
	}
	if _, err := fs.Collection("orders").Doc("ord-flat-1").Set(ctx, &flat); err != nil {
		log.Fatalf("seed flat order: %v", err)
	}

	products := []model.StationeryProduct{
		{Name: "A4 notebook", Category: "paper", Price: 30, IsInStock: true, CreatedAt: now},
		{Name: "Gel pen", Category: "pens", Price: 5, IsInStock: true, CreatedAt: now},
		{Name: "Stapler", Category: "tools", Price: 45, IsInStock: false, CreatedAt: now},
	}
	for i := range products {
		ref := fs.Collection("stationery_products").NewDoc()
		if _, err := ref.Set(ctx, &products[i]); err != nil {
			log.Fatalf("seed product %s: %v", products[i].Name, err)
		}
	}

	log.Println("seed completed successfully")
}

// xeroxFileURL mirrors the download-URL shape the kiosk frontend writes into
// xeroxDetails.fileUrl, with the object path URL-encoded.
func xeroxFileURL(bucket, uid, fileName string) string {
	path := fmt.Sprintf("users/%s/purchases/%s", uid, fileName)
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.PathEscape(path))
}
