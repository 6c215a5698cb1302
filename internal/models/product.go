package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Prices are stored in integer cents (BRL).
// Restricted products can only be bought by document-authorized users.
type Product struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	PriceCents  int64  `gorm:"not null" json:"priceCents"`
	Restricted  bool   `gorm:"default:true" json:"restricted"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}
