package models

import (
	"time"
)

// Category is created on first use during submission (get-or-create by name).
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;unique" json:"name"`
	Products  []Product `gorm:"many2many:product_categories;" json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
