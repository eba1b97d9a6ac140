package services

import (
	"fmt"
	"testing"

	"launchpit/internal/db"
	"launchpit/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database migrated with the full
// schema. The database name is derived from the test name so parallel tests
// never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, name string, premium bool) *models.User {
	t.Helper()

	user := models.User{
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", name),
		Password:  "hash",
		Image:     fmt.Sprintf("https://cdn.example.com/%s.png", name),
		IsPremium: premium,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, gdb *gorm.DB, owner *models.User, name string, status models.ProductStatus) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Slug:        fmt.Sprintf("%s-%d", name, owner.ID),
		Headline:    "A headline long enough",
		Description: "A description that is comfortably over twenty characters.",
		Logo:        "https://cdn.example.com/logo.png",
		ReleaseDate: "01/02/2026",
		Website:     "https://example.com",
		Status:      status,
		UserID:      owner.ID,
	}
	require.NoError(t, gdb.Create(&product).Error)
	return &product
}

func addUpvotes(t *testing.T, gdb *gorm.DB, product *models.Product, users []*models.User) {
	t.Helper()

	for _, u := range users {
		require.NoError(t, gdb.Create(&models.Upvote{UserID: u.ID, ProductID: product.ID}).Error)
	}
}

func validDraft() ProductDraft {
	return ProductDraft{
		Name:        "My Cool App",
		Headline:    "The coolest app out there",
		Description: "A longer description that easily clears the minimum length.",
		Logo:        "https://cdn.example.com/logo.png",
		ReleaseDate: "03/15/2026",
		Website:     "https://mycoolapp.example.com",
		Images:      []string{"https://cdn.example.com/shot1.png"},
		Categories:  []string{"AI", "SaaS", "Productivity"},
	}
}
