package services

import (
	"errors"
	"fmt"
	"log"

	"launchpit/internal/models"

	"gorm.io/gorm"
)

// EngagementService records upvotes and comments and fans out notifications
// to product owners.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// ToggleUpvote flips the (user, product) upvote state and returns the new
// state plus the authoritative total, so callers never have to track a delta.
//
// The toggle is delete-first: if the delete removed a row the upvote existed
// and is now gone. Otherwise we insert, and a unique-constraint conflict
// means a concurrent request inserted between our delete and create; that
// conflict is resolved as the second half of a toggle pair by deleting the
// row. Two concurrent toggles can therefore never both insert.
func (s *EngagementService) ToggleUpvote(userID, productID uint) (upvoted bool, total int64, err error) {
	if userID == 0 {
		return false, 0, ErrUnauthorized
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	res := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Upvote{})
	if res.Error != nil {
		return false, 0, res.Error
	}

	if res.RowsAffected > 0 {
		upvoted = false
	} else {
		upvote := models.Upvote{UserID: userID, ProductID: productID}
		if err := s.db.Create(&upvote).Error; err != nil {
			if isUniqueViolation(err) {
				// Concurrent toggle won the insert; this request becomes the
				// removal half of the pair.
				if derr := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
					Delete(&models.Upvote{}).Error; derr != nil {
					return false, 0, derr
				}
				upvoted = false
			} else {
				return false, 0, err
			}
		} else {
			upvoted = true
		}
	}

	if err := s.db.Model(&models.Upvote{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return upvoted, 0, err
	}

	// Notify the owner on the upvote direction only, never for self-upvotes.
	if upvoted && product.UserID != userID {
		var actor models.User
		if err := s.db.First(&actor, userID).Error; err == nil {
			notification := models.Notification{
				UserID:         product.UserID,
				ProductID:      &product.ID,
				ProfilePicture: actor.Image,
				Body:           fmt.Sprintf("%s upvoted your product %s", actor.Name, product.Name),
				Type:           models.NotificationTypeUpvote,
				Status:         models.NotificationStatusUnread,
			}
			if err := s.db.Create(&notification).Error; err != nil {
				log.Printf("Failed to create upvote notification for product %d: %v", product.ID, err)
			}
		}
	}

	return upvoted, total, nil
}

// AddComment persists a comment with the commenter's avatar snapshotted at
// write time, and notifies the product owner unless they commented on their
// own product.
func (s *EngagementService) AddComment(userID, productID uint, body string) (*models.Comment, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if body == "" {
		return nil, &ValidationError{Fields: map[string]string{"body": "comment body is required"}}
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	comment := models.Comment{
		ProductID:      productID,
		UserID:         userID,
		Body:           body,
		ProfilePicture: user.Image,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if product.UserID != userID {
		notification := models.Notification{
			UserID:         product.UserID,
			ProductID:      &product.ID,
			ProfilePicture: user.Image,
			Body:           fmt.Sprintf("%s commented on your product %s", user.Name, product.Name),
			Type:           models.NotificationTypeComment,
			Status:         models.NotificationStatusUnread,
		}
		if err := s.db.Create(&notification).Error; err != nil {
			log.Printf("Failed to create comment notification for product %d: %v", product.ID, err)
		}
	}

	comment.User = user
	return &comment, nil
}

// DeleteComment removes a comment. Allowed to the comment's author and to the
// owner of the product it sits on.
func (s *EngagementService) DeleteComment(userID, commentID uint) error {
	if userID == 0 {
		return ErrUnauthorized
	}

	var comment models.Comment
	if err := s.db.Preload("Product").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if comment.UserID != userID && comment.Product.UserID != userID {
		return ErrForbidden
	}

	return s.db.Delete(&models.Comment{}, commentID).Error
}
