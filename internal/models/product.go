package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"check:price >= 0" json:"price"`
	Stock       int            `gorm:"check:stock >= 0" json:"stock"`
	Available   bool           `gorm:"default:true" json:"available"`
	Sizes       pq.Int64Array  `gorm:"type:integer[]" json:"sizes"`
	Colors      pq.StringArray `gorm:"type:text[]" json:"colors"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category      `json:"category,omitempty"`
	BrandID     *uuid.UUID     `gorm:"type:uuid;index" json:"brand_id"`
	Brand       *Brand         `json:"brand,omitempty"`
	Images      []ProductImage `json:"images,omitempty"`
	Reviews     []Review       `json:"reviews,omitempty"`
}

type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Image     string    `json:"image"`
	IsPrimary bool      `json:"is_primary"`
}

// Review ratings carry no range constraint; the seed only writes 4 and 5 but
// the column accepts any integer.
type Review struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}
