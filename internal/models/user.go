package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Image    string `json:"image"`             // avatar URL, provided by the upload collaborator

	// IsPremium is mutated only by the Stripe webhook reconciliation.
	IsPremium bool `gorm:"default:false" json:"is_premium"`
	// StripeCustomerID is stored at first completed checkout so cancellations
	// can be matched even if the user later changes their email.
	StripeCustomerID string `gorm:"index" json:"-"`

	Products  []Product `json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
