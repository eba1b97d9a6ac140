package services

import (
	"errors"

	"launchpit/internal/models"

	"gorm.io/gorm"
)

// FreeProductLimit is the submission cap for non-premium users. Products of
// any status count against it.
const FreeProductLimit = 2

type EntitlementService struct {
	db *gorm.DB
}

func NewEntitlementService(db *gorm.DB) *EntitlementService {
	return &EntitlementService{db: db}
}

// CanSubmit reports whether the user may submit another product. Pure read;
// callers must re-check right before accepting a submission since the count
// can change between page load and submit.
func (s *EntitlementService) CanSubmit(userID uint) (bool, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	if user.IsPremium {
		return true, nil
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count < FreeProductLimit, nil
}
