package models

import "github.com/google/uuid"

type Order struct {
	BaseModel
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Email      string      `json:"email"`
	Address    string      `json:"address"`
	PostalCode string      `json:"postal_code"`
	City       string      `json:"city"`
	Paid       bool        `json:"paid"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem keeps the price the client submitted at order time; it is never
// recomputed from the product.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Price     float64    `json:"price"`
	Quantity  int        `json:"quantity"`
	Size      int        `json:"size"`
	Color     string     `json:"color"`
}
