// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"reviewworld/internal/models"
	"reviewworld/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers            int
	NumBrands           int
	LinesPerBrand       int
	VariationsPerLine   int
	ReviewsPerVariation int
	ShouldClean         bool
	// SkipBcrypt stores a plain-text password for faster dev seeding.
	SkipBcrypt bool
	// MaxDays spreads review timestamps over this many days in the past.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng}
}

// CreateUser constructs and persists a sample account. All seeded users
// share the password "SeedPass123!" so they can be logged into directly.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:  gofakeit.Name(),
		Email: strings.ToLower(gofakeit.Email()),
		Role:  models.RoleUser,
		Image: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.PasswordHash = "SeedPass123!"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("SeedPass123!"), bcrypt.DefaultCost)
		user.PasswordHash = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateBrand constructs and persists a brand. Seeded brands default to
// APPROVED so they are immediately visible on public pages.
func (f *Factory) CreateBrand(overrides ...func(*models.Brand)) (*models.Brand, error) {
	name := fmt.Sprintf("%s %d", gofakeit.Company(), gofakeit.Number(10, 99))
	brand := &models.Brand{
		Name:        name,
		Slug:        validation.Slugify(name),
		Description: gofakeit.Sentence(12),
		LogoURL:     fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		Status:      models.StatusApproved,
	}

	for _, override := range overrides {
		override(brand)
	}

	if err := f.db.Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// CreateProductLine constructs and persists a product line under the brand.
func (f *Factory) CreateProductLine(brand *models.Brand, overrides ...func(*models.ProductLine)) (*models.ProductLine, error) {
	name := fmt.Sprintf("%s %d", gofakeit.ProductName(), gofakeit.Number(10, 99))
	line := &models.ProductLine{
		BrandID:     brand.ID,
		Name:        name,
		Slug:        validation.Slugify(name),
		Description: gofakeit.Sentence(10),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
		Status:      models.StatusApproved,
	}

	for _, override := range overrides {
		override(line)
	}

	if err := f.db.Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// CreateVariation constructs and persists a variation under the line.
func (f *Factory) CreateVariation(line *models.ProductLine, overrides ...func(*models.Variation)) (*models.Variation, error) {
	name := fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.ProductName())
	variation := &models.Variation{
		ProductLineID: line.ID,
		Name:          name,
		Slug:          validation.Slugify(name) + fmt.Sprintf("-%d", gofakeit.Number(100, 999)),
		Description:   gofakeit.Sentence(10),
		ImageURL:      fmt.Sprintf("https://picsum.photos/seed/%s/600/600", gofakeit.UUID()),
		Tags:          []string{gofakeit.ProductCategory(), gofakeit.AdjectiveDescriptive()},
		Status:        models.StatusApproved,
	}

	for _, override := range overrides {
		override(variation)
	}

	if err := f.db.Create(variation).Error; err != nil {
		return nil, err
	}
	return variation, nil
}

// CreateReview persists a review from user on variation with a realistic
// created_at spread so trending and recency listings have texture.
func (f *Factory) CreateReview(user *models.User, variation *models.Variation, overrides ...func(*models.Review)) (*models.Review, error) {
	rating := f.rng.Intn(5) + 1
	review := &models.Review{
		UserID:        user.ID,
		VariationID:   variation.ID,
		Rating:        rating,
		Title:         gofakeit.Sentence(4),
		Body:          gofakeit.Paragraph(1, 3, 8, " "),
		WouldBuyAgain: rating >= 3 && f.rng.Float32() < 0.8,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	review.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateReport persists a report from user against review.
func (f *Factory) CreateReport(user *models.User, review *models.Review, overrides ...func(*models.Report)) (*models.Report, error) {
	reasons := []models.ReportReason{
		models.ReasonSpam, models.ReasonOffensive, models.ReasonIncorrect, models.ReasonOther,
	}
	report := &models.Report{
		ReviewID: review.ID,
		UserID:   user.ID,
		Reason:   string(reasons[f.rng.Intn(len(reasons))]),
	}

	for _, override := range overrides {
		override(report)
	}

	if err := f.db.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}
