package repository

import (
	"context"
	"errors"
	"strings"

	"reviewworld/internal/models"

	"gorm.io/gorm"
)

// BrandListFilter narrows and orders public brand listings.
type BrandListFilter struct {
	Query  string
	Sort   string // "alpha", "alpha-desc"
	Limit  int
	Offset int
}

// BrandRepository defines the interface for brand data operations
type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id string) (*models.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*models.Brand, error)
	GetApprovedBySlug(ctx context.Context, slug string) (*models.Brand, error)
	ListApproved(ctx context.Context, filter BrandListFilter) ([]*models.Brand, int64, error)
	ListByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Brand, error)
	SearchApproved(ctx context.Context, query string, limit int) ([]*models.Brand, error)
	UpdateStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Brand, error)
}

type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("A brand with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Brand", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &brand, nil
}

func (r *brandRepository) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Brand", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &brand, nil
}

// GetApprovedBySlug loads an approved brand with its approved product lines
// for the public brand page.
func (r *brandRepository) GetApprovedBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, models.StatusApproved).
		Preload("ProductLines", "status = ?", models.StatusApproved).
		First(&brand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Brand", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &brand, nil
}

func (r *brandRepository) ListApproved(ctx context.Context, filter BrandListFilter) ([]*models.Brand, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Brand{}).Where("status = ?", models.StatusApproved)
		if filter.Query != "" {
			q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	order := "name ASC"
	if filter.Sort == "alpha-desc" {
		order = "name DESC"
	}

	var brands []*models.Brand
	err := scope().
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&brands).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return brands, total, nil
}

func (r *brandRepository) ListByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Brand, error) {
	var brands []*models.Brand
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&brands).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return brands, nil
}

func (r *brandRepository) SearchApproved(ctx context.Context, query string, limit int) ([]*models.Brand, error) {
	var brands []*models.Brand
	err := r.db.WithContext(ctx).
		Where("status = ? AND LOWER(name) LIKE ?", models.StatusApproved, "%"+strings.ToLower(query)+"%").
		Order("name ASC").
		Limit(limit).
		Find(&brands).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return brands, nil
}

// UpdateStatus applies a moderation decision as a single-row update.
func (r *brandRepository) UpdateStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Brand, error) {
	res := r.db.WithContext(ctx).Model(&models.Brand{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Brand", id)
	}
	return r.GetByID(ctx, id)
}
