package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeActivated NotificationType = "ACTIVATED"
	NotificationTypeRejected  NotificationType = "REJECTED"
	NotificationTypeUpvote    NotificationType = "UPVOTE"
	NotificationTypeComment   NotificationType = "COMMENT"
)

type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "UNREAD"
	NotificationStatusRead   NotificationStatus = "READ"
)

// Notification is append-only except for the bulk mark-all-read update.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // recipient
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ProductID *uint            `gorm:"index" json:"product_id"`
	Product   *Product         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product,omitempty"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Body      string           `gorm:"type:text;not null" json:"body"`
	// Actor avatar snapshot at event time.
	ProfilePicture string             `json:"profile_picture"`
	Status         NotificationStatus `gorm:"type:varchar(10);default:'UNREAD';index" json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}
