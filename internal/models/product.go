package models

import (
	"time"
)

type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "PENDING"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusRejected ProductStatus = "REJECTED"
)

type Product struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Slug        string        `gorm:"uniqueIndex;not null" json:"slug"`
	Headline    string        `gorm:"not null" json:"headline"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Logo        string        `gorm:"not null" json:"logo"`
	ReleaseDate string        `gorm:"not null" json:"release_date"`
	Website     string        `json:"website"`
	Twitter     string        `json:"twitter"`
	Discord     string        `json:"discord"`
	Status      ProductStatus `gorm:"type:varchar(10);default:'PENDING';index" json:"status"`
	Rank        int           `gorm:"default:0" json:"rank"` // stored for display; authoritative rank is computed per request

	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Categories []Category `gorm:"many2many:product_categories;" json:"categories"`
	Images     []Image    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
	Upvotes    []Upvote   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"upvotes,omitempty"`
	Comments   []Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not a column.
	UpvoteCount int `gorm:"-" json:"upvote_count"`
}
