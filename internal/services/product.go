package services

import (
	"errors"
	"strings"

	"launchpit/internal/models"
	"launchpit/internal/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ProductDraft is the server-side authoritative form of the submission
// wizard's payload. The client enforces the same constraints step by step,
// but the counts can change between page load and submit, so nothing from
// the client is trusted.
type ProductDraft struct {
	Name        string   `json:"name" validate:"required,min=4"`
	Headline    string   `json:"headline" validate:"required,min=10,max=70"`
	Description string   `json:"description" validate:"required,min=20,max=300"`
	Logo        string   `json:"logo" validate:"required"`
	ReleaseDate string   `json:"release_date" validate:"required"`
	Website     string   `json:"website" validate:"required_without_all=Twitter Discord"`
	Twitter     string   `json:"twitter"`
	Discord     string   `json:"discord"`
	Images      []string `json:"images" validate:"min=1,dive,required"`
	Categories  []string `json:"categories" validate:"min=3,dive,required"`
}

type ProductService struct {
	db          *gorm.DB
	entitlement *EntitlementService
	validate    *validator.Validate
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:          db,
		entitlement: NewEntitlementService(db),
		validate:    validator.New(),
	}
}

// fieldMessage turns a validator error into a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name must be at least 4 characters"
	case "Headline":
		return "headline must be between 10 and 70 characters"
	case "Description":
		return "description must be between 20 and 300 characters"
	case "Logo":
		return "a logo is required"
	case "ReleaseDate":
		return "a release date is required"
	case "Website":
		return "at least one of website, twitter or discord is required"
	case "Images":
		return "at least 1 product image is required"
	case "Categories":
		return "at least 3 categories are required"
	}
	return "invalid value"
}

func (s *ProductService) validateDraft(draft *ProductDraft, forUpdate bool) error {
	// The wizard truncates the name to 30 characters as the user types; the
	// min-4 rule applies to the truncated name.
	runes := []rune(draft.Name)
	if len(runes) > 30 {
		draft.Name = string(runes[:30])
	}

	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string)
	for _, fe := range verrs {
		// Categories are display-only on the edit form and not mutated by
		// Update, so their absence is not an edit error.
		if forUpdate && fe.Field() == "Categories" {
			continue
		}
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// Submit validates the draft and persists a new PENDING product owned by
// ownerID. Categories are get-or-create by name; images are created from the
// reference list. The whole write happens in one transaction.
func (s *ProductService) Submit(ownerID uint, draft ProductDraft) (*models.Product, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}

	if err := s.validateDraft(&draft, false); err != nil {
		return nil, err
	}

	// Re-check the entitlement gate server-side; the client-rendered state
	// may be stale.
	ok, err := s.entitlement.CanSubmit(ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSubmissionLimit
	}

	slug := utils.Slugify(draft.Name)

	product := models.Product{
		Name:        draft.Name,
		Slug:        slug,
		Headline:    draft.Headline,
		Description: draft.Description,
		Logo:        draft.Logo,
		ReleaseDate: draft.ReleaseDate,
		Website:     draft.Website,
		Twitter:     draft.Twitter,
		Discord:     draft.Discord,
		Status:      models.ProductStatusPending,
		Rank:        0,
		UserID:      ownerID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Product{}).Where("slug = ?", slug).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateSlug
		}

		categories := make([]models.Category, 0, len(draft.Categories))
		for _, name := range draft.Categories {
			var cat models.Category
			if err := tx.Where(models.Category{Name: name}).FirstOrCreate(&cat).Error; err != nil {
				return err
			}
			categories = append(categories, cat)
		}
		product.Categories = categories

		for _, url := range draft.Images {
			product.Images = append(product.Images, models.Image{URL: url})
		}

		if err := tx.Create(&product).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateSlug
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// Update overwrites the product's scalar fields, replaces the image set
// wholesale and forces the status back to PENDING so the product is
// re-reviewed. Categories are intentionally not touched by edit.
func (s *ProductService) Update(ownerID, productID uint, draft ProductDraft) (*models.Product, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.UserID != ownerID {
		return nil, ErrForbidden
	}

	if err := s.validateDraft(&draft, true); err != nil {
		return nil, err
	}

	slug := utils.Slugify(draft.Name)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var clash int64
		if err := tx.Model(&models.Product{}).
			Where("slug = ? AND id <> ?", slug, productID).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return ErrDuplicateSlug
		}

		updates := map[string]interface{}{
			"name":         draft.Name,
			"slug":         slug,
			"headline":     draft.Headline,
			"description":  draft.Description,
			"logo":         draft.Logo,
			"release_date": draft.ReleaseDate,
			"website":      draft.Website,
			"twitter":      draft.Twitter,
			"discord":      draft.Discord,
			"status":       models.ProductStatusPending,
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Updates(updates).Error; err != nil {
			return err
		}

		// Replace the image set wholesale; partial updates are unsupported.
		if err := tx.Where("product_id = ?", productID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		for _, url := range draft.Images {
			if err := tx.Create(&models.Image{ProductID: productID, URL: url}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Images").Preload("Categories").First(&product, productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes the product and everything it owns. Owner only.
func (s *ProductService) Delete(ownerID, productID uint) error {
	if ownerID == 0 {
		return ErrUnauthorized
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if product.UserID != ownerID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_categories WHERE product_id = ?", productID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, productID).Error
	})
}

// fillUpvoteCounts batch-fills the UpvoteCount field for a product slice.
func (s *ProductService) fillUpvoteCounts(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uint, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	type countRow struct {
		ProductID uint
		Count     int
	}
	var rows []countRow
	if err := s.db.Model(&models.Upvote{}).
		Select("product_id, COUNT(*) as count").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.ProductID] = r.Count
	}
	for i := range products {
		products[i].UpvoteCount = counts[products[i].ID]
	}
	return nil
}

// GetActiveProducts lists ACTIVE products with their engagement data.
func (s *ProductService) GetActiveProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("User").Preload("Categories").Preload("Images").
		Preload("Comments.User").
		Where("status = ?", models.ProductStatusActive).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillUpvoteCounts(products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetBySlug loads one product with all detail-page associations.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("User").Preload("Categories").Preload("Images").
		Preload("Comments.User").Preload("Upvotes.User").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	product.UpvoteCount = len(product.Upvotes)
	return &product, nil
}

// GetOwnerProducts lists every product of one user, any status.
func (s *ProductService) GetOwnerProducts(userID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Categories").Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillUpvoteCounts(products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetPendingProducts lists products awaiting moderation.
func (s *ProductService) GetPendingProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("User").Preload("Categories").Preload("Images").
		Where("status = ?", models.ProductStatusPending).
		Order("created_at ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetByCategory lists ACTIVE products carrying the named category.
func (s *ProductService) GetByCategory(name string) ([]models.Product, error) {
	var category models.Category
	if err := s.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var products []models.Product
	err := s.db.Preload("User").Preload("Categories").Preload("Images").
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ? AND status = ?", category.ID, models.ProductStatusActive).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillUpvoteCounts(products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search is a plain case-insensitive substring filter over ACTIVE product
// names. Deliberately not a relevance ranking.
func (s *ProductService) Search(query string) ([]models.Product, error) {
	products := []models.Product{}
	if query == "" {
		return products, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"
	err := s.db.Preload("Categories").Preload("Images").
		Where("status = ? AND lower(name) LIKE ?", models.ProductStatusActive, pattern).
		Order("created_at DESC").
		Limit(50).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillUpvoteCounts(products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetCategories lists all categories.
func (s *ProductService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
