// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name          string              `json:"name" gorm:"size:255;not null"`
	Description   string              `json:"description" gorm:"type:text"`
	Price         decimal.Decimal     `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock         int                 `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	AverageRating decimal.NullDecimal `json:"averageRating" gorm:"type:decimal(3,2)"`
	ReviewCount   int                 `json:"reviewCount" gorm:"not null;default:0"`
	ImageURLs     []string            `json:"imageUrls" gorm:"column:image_urls;serializer:json;type:text"`

	// Relationships
	Categories    []Category     `json:"Categories,omitempty" gorm:"many2many:product_categories;"`
	Manufacturers []Manufacturer `json:"Manufacturers,omitempty" gorm:"many2many:product_manufacturers;"`
	Materials     []Material     `json:"Materials,omitempty" gorm:"many2many:product_materials;"`
}

// ProductSummary is the slice of a product embedded in order history.
type ProductSummary struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	ImageURLs []string `json:"imageUrls" gorm:"column:image_urls;serializer:json"`
}

func (ProductSummary) TableName() string {
	return "products"
}
