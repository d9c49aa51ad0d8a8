package model

import "time"

// StationeryProduct is a catalog entry, independent of purchases.
type StationeryProduct struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Category  string    `firestore:"category" json:"category"`
	Price     float64   `firestore:"price" json:"price"`
	IsInStock bool      `firestore:"isInStock" json:"isInStock"`
	ImageURL  string    `firestore:"imageUrl" json:"imageUrl,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
