package repository

import (
	"context"
	"errors"

	"reviewworld/internal/models"

	"gorm.io/gorm"
)

// ProductLineRepository defines the interface for product line data operations
type ProductLineRepository interface {
	Create(ctx context.Context, line *models.ProductLine) error
	GetByID(ctx context.Context, id string) (*models.ProductLine, error)
	GetBySlug(ctx context.Context, slug string) (*models.ProductLine, error)
	GetApprovedBySlug(ctx context.Context, slug string) (*models.ProductLine, error)
	ListByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.ProductLine, error)
	UpdateStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.ProductLine, error)
}

type productLineRepository struct {
	db *gorm.DB
}

// NewProductLineRepository creates a new product line repository
func NewProductLineRepository(db *gorm.DB) ProductLineRepository {
	return &productLineRepository{db: db}
}

func (r *productLineRepository) Create(ctx context.Context, line *models.ProductLine) error {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("A product line with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *productLineRepository) GetByID(ctx context.Context, id string) (*models.ProductLine, error) {
	var line models.ProductLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product line", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &line, nil
}

func (r *productLineRepository) GetBySlug(ctx context.Context, slug string) (*models.ProductLine, error) {
	var line models.ProductLine
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product line", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &line, nil
}

// GetApprovedBySlug loads an approved line with its brand and approved
// variations for the public line page.
func (r *productLineRepository) GetApprovedBySlug(ctx context.Context, slug string) (*models.ProductLine, error) {
	var line models.ProductLine
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, models.StatusApproved).
		Preload("Brand").
		Preload("Variations", "status = ?", models.StatusApproved).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product line", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &line, nil
}

// ListByStatus returns lines newest-first with the parent brand attached so
// moderators see brand context without extra lookups.
func (r *productLineRepository) ListByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.ProductLine, error) {
	var lines []*models.ProductLine
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("Brand").
		Order("created_at DESC").
		Find(&lines).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return lines, nil
}

// UpdateStatus applies a moderation decision as a single-row update.
func (r *productLineRepository) UpdateStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.ProductLine, error) {
	res := r.db.WithContext(ctx).Model(&models.ProductLine{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Product line", id)
	}
	return r.GetByID(ctx, id)
}
