package domain

import "time"

// Product is a catalog row. Category is nullable: a product created without
// one stores NULL, not the empty string.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index:idx_products_name,collate:NOCASE" json:"name"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Price     float64   `gorm:"not null;index:idx_products_price" json:"price"`
	Category  *string   `gorm:"size:120;index:idx_products_category" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
