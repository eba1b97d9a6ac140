package services

import (
	"errors"
	"fmt"

	"launchpit/internal/models"

	"gorm.io/gorm"
)

// ModerationService transitions pending products to ACTIVE or REJECTED and
// notifies the owner. It performs no ownership checks: the admin perimeter is
// enforced by the router's basic-auth gate.
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// Activate sets the product ACTIVE and appends an ACTIVATED notification to
// the owner. Status change and notification share one transaction so they
// appear together or not at all. Re-activating an already-ACTIVE product is a
// no-op: the status is unchanged and no duplicate notification is created.
func (s *ModerationService) Activate(productID uint) (*models.Product, error) {
	var product models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if product.Status == models.ProductStatusActive {
			return nil
		}

		if err := tx.Model(&product).Update("status", models.ProductStatusActive).Error; err != nil {
			return err
		}
		product.Status = models.ProductStatusActive

		notification := models.Notification{
			UserID:         product.UserID,
			ProductID:      &product.ID,
			ProfilePicture: product.Logo,
			Body:           fmt.Sprintf("Your product %s has been activated", product.Name),
			Type:           models.NotificationTypeActivated,
			Status:         models.NotificationStatusUnread,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Reject sets the product REJECTED and appends a REJECTED notification
// embedding the free-text reason. Same transaction and idempotency rules as
// Activate.
func (s *ModerationService) Reject(productID uint, reason string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if product.Status == models.ProductStatusRejected {
			return nil
		}

		if err := tx.Model(&product).Update("status", models.ProductStatusRejected).Error; err != nil {
			return err
		}

		notification := models.Notification{
			UserID:         product.UserID,
			ProductID:      &product.ID,
			ProfilePicture: product.Logo,
			Body:           fmt.Sprintf("Your product %s has been rejected. Reason: %s", product.Name, reason),
			Type:           models.NotificationTypeRejected,
			Status:         models.NotificationStatusUnread,
		}
		return tx.Create(&notification).Error
	})
}
