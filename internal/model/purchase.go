package model

import "time"

const PurchaseTypeArcade = "arcade"

// XeroxDetails is present on print/xerox purchases only. FileURL points at
// the uploaded document in the storage bucket.
type XeroxDetails struct {
	FileName string `firestore:"fileName" json:"fileName"`
	FileURL  string `firestore:"fileUrl" json:"fileUrl"`
}

type StationeryItem struct {
	Name     string  `firestore:"name" json:"name"`
	Quantity int64   `firestore:"quantity" json:"quantity"`
	Price    float64 `firestore:"price" json:"price"`
}

// Purchase is a single order record. The variant (arcade / stationery /
// xerox) is distinguished by which optional fields are populated. A purchase
// lives either under users/{uid}/purchases or in one of the flat top-level
// collections (purchases, orders); both layouts exist in production data.
type Purchase struct {
	// OrderID is the document ID; UserID the owning user for nested
	// documents. Neither is stored on the document itself.
	OrderID string `firestore:"-" json:"order_id"`
	UserID  string `firestore:"-" json:"user_id,omitempty"`

	Type            string           `firestore:"type" json:"type,omitempty"`
	PIN             string           `firestore:"pin" json:"pin,omitempty"`
	StationeryItems []StationeryItem `firestore:"stationeryItems" json:"stationeryItems,omitempty"`
	TotalCost       float64          `firestore:"totalCost" json:"totalCost"`
	Timestamp       time.Time        `firestore:"timestamp" json:"timestamp"`
	XeroxDetails    *XeroxDetails    `firestore:"xeroxDetails" json:"xeroxDetails,omitempty"`
}

// IsStationery reports whether the record is a stationery order. Presence of
// the stationeryItems field is the discriminator, matching the stored shape.
func (p *Purchase) IsStationery() bool {
	return p.StationeryItems != nil
}
