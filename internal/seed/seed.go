package seed

import (
	"fmt"
	"log"

	"reviewworld/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with generated catalog and review data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with defaults filled in for any zero options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumBrands <= 0 {
		opts.NumBrands = 10
	}
	if opts.LinesPerBrand <= 0 {
		opts.LinesPerBrand = 3
	}
	if opts.VariationsPerLine <= 0 {
		opts.VariationsPerLine = 4
	}
	if opts.ReviewsPerVariation <= 0 {
		opts.ReviewsPerVariation = 5
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes all seeded rows, children first so foreign keys hold.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Report{}, &models.Review{}, &models.Variation{},
		&models.ProductLine{}, &models.Brand{}, &models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run generates the full mesh: users, a brand/line/variation catalog, and
// reviews spread over recent weeks. A slice of the catalog is left PENDING
// so the moderation queue has content.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users and %d brands...", s.opts.NumUsers, s.opts.NumBrands)

	users, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	variations, err := s.seedCatalog()
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	reviews, err := s.seedReviews(users, variations)
	if err != nil {
		return fmt.Errorf("seed reviews: %w", err)
	}

	if err := s.seedReports(users, reviews); err != nil {
		return fmt.Errorf("seed reports: %w", err)
	}

	log.Printf("Seeding complete: %d users, %d variations, %d reviews",
		len(users), len(variations), len(reviews))
	return nil
}

func (s *Seeder) seedUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.NumUsers)

	// A known admin and a known regular account for manual testing.
	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Name = "Admin"
		u.Email = "admin@example.com"
		u.Role = models.RoleAdmin
	})
	if err != nil {
		return nil, err
	}
	users = append(users, admin)

	tester, err := s.factory.CreateUser(func(u *models.User) {
		u.Name = "Test User"
		u.Email = "test@example.com"
	})
	if err != nil {
		return nil, err
	}
	users = append(users, tester)

	for i := len(users); i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser(func(u *models.User) {
			// gofakeit emails collide at scale; suffix keeps them unique.
			u.Email = fmt.Sprintf("%d.%s", i, u.Email)
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedCatalog() ([]*models.Variation, error) {
	var variations []*models.Variation

	for b := 0; b < s.opts.NumBrands; b++ {
		// Every fifth brand stays PENDING for the moderation queue.
		status := models.StatusApproved
		if b%5 == 4 {
			status = models.StatusPending
		}
		brand, err := s.factory.CreateBrand(func(br *models.Brand) {
			br.Status = status
		})
		if err != nil {
			return nil, err
		}

		for l := 0; l < s.opts.LinesPerBrand; l++ {
			line, err := s.factory.CreateProductLine(brand)
			if err != nil {
				return nil, err
			}
			for v := 0; v < s.opts.VariationsPerLine; v++ {
				variation, err := s.factory.CreateVariation(line)
				if err != nil {
					return nil, err
				}
				variations = append(variations, variation)
			}
		}
	}
	return variations, nil
}

// seedReviews walks user/variation pairs instead of sampling so the unique
// one-review-per-user-per-variation index is never violated.
func (s *Seeder) seedReviews(users []*models.User, variations []*models.Variation) ([]*models.Review, error) {
	var reviews []*models.Review
	for vi, variation := range variations {
		for r := 0; r < s.opts.ReviewsPerVariation && r < len(users); r++ {
			user := users[(vi+r)%len(users)]
			review, err := s.factory.CreateReview(user, variation)
			if err != nil {
				return nil, err
			}
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (s *Seeder) seedReports(users []*models.User, reviews []*models.Review) error {
	// Roughly one in twenty reviews attracts a report.
	for i := 0; i < len(reviews); i += 20 {
		reporter := users[i%len(users)]
		if _, err := s.factory.CreateReport(reporter, reviews[i]); err != nil {
			return err
		}
	}
	return nil
}
