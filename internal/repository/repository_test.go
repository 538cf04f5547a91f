package repository

import (
	"testing"

	"reviewworld/internal/database"
	"reviewworld/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRepoDB opens an in-memory SQLite database with error translation on
// so unique-index violations surface as gorm.ErrDuplicatedKey, matching the
// production PostgreSQL configuration.
func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Tester", Email: email, PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestCatalog persists an approved brand, line, and variation chain.
func createTestCatalog(t *testing.T, db *gorm.DB, slug string) (*models.Brand, *models.ProductLine, *models.Variation) {
	t.Helper()
	brand := &models.Brand{Name: slug, Slug: slug, Status: models.StatusApproved}
	require.NoError(t, db.Create(brand).Error)
	line := &models.ProductLine{BrandID: brand.ID, Name: slug + " line", Slug: slug + "-line", Status: models.StatusApproved}
	require.NoError(t, db.Create(line).Error)
	variation := &models.Variation{ProductLineID: line.ID, Name: slug + " variation", Slug: slug + "-variation", Status: models.StatusApproved}
	require.NoError(t, db.Create(variation).Error)
	return brand, line, variation
}
