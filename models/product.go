package models

import (
	"gorm.io/datatypes"
)

// Product is the sole persisted entity. Scalar attributes map to plain
// columns; the nested sub-objects from the external feed are stored as
// JSON blobs, not relationally normalized.
type Product struct {
	ID                   uint    `gorm:"primaryKey" json:"id"`
	Title                string  `gorm:"not null" json:"title"` // Required
	Description          string  `json:"description"`
	Category             string  `json:"category"`
	Price                float64 `gorm:"not null" json:"price"` // Required
	DiscountPercentage   float64 `json:"discountPercentage"`
	Rating               float64 `json:"rating"`
	Stock                int     `json:"stock"`
	Brand                string  `json:"brand"`
	SKU                  string  `json:"sku"`
	Weight               float64 `json:"weight"`
	WarrantyInformation  string  `json:"warrantyInformation"`
	ShippingInformation  string  `json:"shippingInformation"`
	AvailabilityStatus   string  `json:"availabilityStatus"`
	ReturnPolicy         string  `json:"returnPolicy"`
	MinimumOrderQuantity int     `json:"minimumOrderQuantity"`
	Thumbnail            string  `json:"thumbnail"`

	Dimensions datatypes.JSONMap `json:"dimensions"` // {width, height, depth}
	Meta       datatypes.JSONMap `json:"meta"`       // {createdAt, updatedAt, barcode, qrCode}
	Reviews    datatypes.JSON    `json:"reviews"`    // list of review objects
	Tags       datatypes.JSON    `json:"tags"`       // list of strings
	Images     datatypes.JSON    `json:"images"`     // list of URLs
}

func (Product) TableName() string { return "products" }
