package models

import (
	"time"
)

// Image belongs to exactly one product. Edits replace the whole set
// (delete-all then insert), there is no partial image update.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
