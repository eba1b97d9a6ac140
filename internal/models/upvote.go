package models

import (
	"time"
)

// Upvote presence is the "has upvoted" state. The unique (user, product)
// index is what makes ToggleUpvote safe under concurrent requests.
type Upvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_product_upvote" json:"user_id"`
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_user_product_upvote" json:"product_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
