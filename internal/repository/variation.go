package repository

import (
	"context"
	"errors"
	"strings"

	"reviewworld/internal/models"

	"gorm.io/gorm"
)

// VariationRepository defines the interface for variation data operations
type VariationRepository interface {
	Create(ctx context.Context, variation *models.Variation) error
	GetByID(ctx context.Context, id string) (*models.Variation, error)
	GetBySlug(ctx context.Context, slug string) (*models.Variation, error)
	GetApprovedBySlug(ctx context.Context, slug string) (*models.Variation, error)
	GetApprovedByIDs(ctx context.Context, ids []string) ([]*models.Variation, error)
	ListByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Variation, error)
	SearchApproved(ctx context.Context, query string, limit int) ([]*models.Variation, error)
	UpdateStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Variation, error)
}

type variationRepository struct {
	db *gorm.DB
}

// NewVariationRepository creates a new variation repository
func NewVariationRepository(db *gorm.DB) VariationRepository {
	return &variationRepository{db: db}
}

func (r *variationRepository) Create(ctx context.Context, variation *models.Variation) error {
	if err := r.db.WithContext(ctx).Create(variation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("A variation with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *variationRepository) GetByID(ctx context.Context, id string) (*models.Variation, error) {
	var variation models.Variation
	if err := r.db.WithContext(ctx).First(&variation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Variation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &variation, nil
}

func (r *variationRepository) GetBySlug(ctx context.Context, slug string) (*models.Variation, error) {
	var variation models.Variation
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&variation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Variation", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &variation, nil
}

// GetApprovedBySlug loads an approved variation with its full ancestry for
// the public detail page.
func (r *variationRepository) GetApprovedBySlug(ctx context.Context, slug string) (*models.Variation, error) {
	var variation models.Variation
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, models.StatusApproved).
		Preload("ProductLine").
		Preload("ProductLine.Brand").
		First(&variation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Variation", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &variation, nil
}

// GetApprovedByIDs returns the approved subset of the given ids with
// ancestry preloaded. Order is unspecified; callers re-order as needed.
func (r *variationRepository) GetApprovedByIDs(ctx context.Context, ids []string) ([]*models.Variation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var variations []*models.Variation
	err := r.db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, models.StatusApproved).
		Preload("ProductLine").
		Preload("ProductLine.Brand").
		Find(&variations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return variations, nil
}

// ListByStatus returns variations newest-first with line and brand context
// attached for the moderation queue.
func (r *variationRepository) ListByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Variation, error) {
	var variations []*models.Variation
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("ProductLine").
		Preload("ProductLine.Brand").
		Order("created_at DESC").
		Find(&variations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return variations, nil
}

// SearchApproved matches a variation by its own name, its product line's
// name, or its brand's name, case-insensitively.
func (r *variationRepository) SearchApproved(ctx context.Context, query string, limit int) ([]*models.Variation, error) {
	like := "%" + strings.ToLower(query) + "%"
	var variations []*models.Variation
	err := r.db.WithContext(ctx).
		Joins("JOIN product_lines ON product_lines.id = variations.product_line_id").
		Joins("JOIN brands ON brands.id = product_lines.brand_id").
		Where("variations.status = ?", models.StatusApproved).
		Where("LOWER(variations.name) LIKE ? OR LOWER(product_lines.name) LIKE ? OR LOWER(brands.name) LIKE ?", like, like, like).
		Preload("ProductLine").
		Preload("ProductLine.Brand").
		Limit(limit).
		Find(&variations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return variations, nil
}

// UpdateStatus applies a moderation decision as a single-row update.
func (r *variationRepository) UpdateStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Variation, error) {
	res := r.db.WithContext(ctx).Model(&models.Variation{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Variation", id)
	}
	return r.GetByID(ctx, id)
}
