// Package service contains the application's business logic.
package service

import (
	"context"
	"strings"

	"reviewworld/internal/cache"
	"reviewworld/internal/models"
	"reviewworld/internal/observability"
	"reviewworld/internal/repository"
	"reviewworld/internal/validation"
)

// Submission is one entry in the moderation queue, tagged with its kind so
// mixed listings stay self-describing.
type Submission struct {
	Kind        models.SubmissionKind `json:"kind"`
	Brand       *models.Brand         `json:"brand,omitempty"`
	ProductLine *models.ProductLine   `json:"product_line,omitempty"`
	Variation   *models.Variation     `json:"variation,omitempty"`
}

// ModerationService handles community submissions and moderator decisions.
type ModerationService struct {
	brandRepo     repository.BrandRepository
	lineRepo      repository.ProductLineRepository
	variationRepo repository.VariationRepository
	isAdmin       func(ctx context.Context, userID string) (bool, error)
}

type SubmitBrandInput struct {
	Name        string
	Slug        string
	Description string
	LogoURL     string
}

type SubmitProductLineInput struct {
	BrandSlug   string
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

type SubmitVariationInput struct {
	LineSlug    string
	Name        string
	Slug        string
	Description string
	ImageURL    string
	Tags        []string
}

type DecideInput struct {
	UserID string
	Kind   models.SubmissionKind
	ID     string
	Status models.ModerationStatus
	Reason string
}

func NewModerationService(
	brandRepo repository.BrandRepository,
	lineRepo repository.ProductLineRepository,
	variationRepo repository.VariationRepository,
	isAdmin func(ctx context.Context, userID string) (bool, error),
) *ModerationService {
	return &ModerationService{
		brandRepo:     brandRepo,
		lineRepo:      lineRepo,
		variationRepo: variationRepo,
		isAdmin:       isAdmin,
	}
}

// resolveSlug validates an explicit slug or derives one from the name.
func resolveSlug(name, explicit string) (string, error) {
	if explicit != "" {
		if err := validation.ValidateSlug(explicit); err != nil {
			return "", models.NewValidationError(err.Error())
		}
		return explicit, nil
	}
	slug := validation.Slugify(name)
	if slug == "" {
		return "", models.NewSlugError("Could not derive a slug from the name; provide one explicitly")
	}
	return slug, nil
}

func validateSubmission(name, description, imageURL string) error {
	const maxNameLen = 100
	const maxDescriptionLen = 1000

	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("Name is required")
	}
	if len(name) > maxNameLen {
		return models.NewValidationError("Name too long (max 100 characters)")
	}
	if len(description) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 1000 characters)")
	}
	if err := validation.ValidateURL(imageURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// SubmitBrand creates a brand in PENDING state.
func (s *ModerationService) SubmitBrand(ctx context.Context, in SubmitBrandInput) (*models.Brand, error) {
	if err := validateSubmission(in.Name, in.Description, in.LogoURL); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}

	brand := &models.Brand{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		Status:      models.StatusPending,
	}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}

	observability.SubmissionsTotal.WithLabelValues(string(models.KindBrand)).Inc()
	return brand, nil
}

// SubmitProductLine creates a product line in PENDING state under the brand
// identified by slug.
func (s *ModerationService) SubmitProductLine(ctx context.Context, in SubmitProductLineInput) (*models.ProductLine, error) {
	brand, err := s.brandRepo.GetBySlug(ctx, in.BrandSlug)
	if err != nil {
		return nil, err
	}
	if err := validateSubmission(in.Name, in.Description, in.ImageURL); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}

	line := &models.ProductLine{
		BrandID:     brand.ID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      models.StatusPending,
	}
	if err := s.lineRepo.Create(ctx, line); err != nil {
		return nil, err
	}

	observability.SubmissionsTotal.WithLabelValues(string(models.KindProductLine)).Inc()
	return line, nil
}

// SubmitVariation creates a variation in PENDING state under the product
// line identified by slug.
func (s *ModerationService) SubmitVariation(ctx context.Context, in SubmitVariationInput) (*models.Variation, error) {
	line, err := s.lineRepo.GetBySlug(ctx, in.LineSlug)
	if err != nil {
		return nil, err
	}
	if err := validateSubmission(in.Name, in.Description, in.ImageURL); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}

	variation := &models.Variation{
		ProductLineID: line.ID,
		Name:          strings.TrimSpace(in.Name),
		Slug:          slug,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		Tags:          in.Tags,
		Status:        models.StatusPending,
	}
	if err := s.variationRepo.Create(ctx, variation); err != nil {
		return nil, err
	}

	observability.SubmissionsTotal.WithLabelValues(string(models.KindVariation)).Inc()
	return variation, nil
}

// ListSubmissions returns queue entries newest-first within each kind. An
// empty kind returns all three kinds; status defaults to PENDING.
func (s *ModerationService) ListSubmissions(ctx context.Context, userID string, kind models.SubmissionKind, status models.ModerationStatus) ([]Submission, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, models.NewValidationError("Unknown status: " + string(status))
	}
	if kind != "" && !kind.Valid() {
		return nil, models.NewValidationError("Unknown submission type: " + string(kind))
	}

	out := []Submission{}
	if kind == "" || kind == models.KindBrand {
		brands, err := s.brandRepo.ListByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		for _, b := range brands {
			out = append(out, Submission{Kind: models.KindBrand, Brand: b})
		}
	}
	if kind == "" || kind == models.KindProductLine {
		lines, err := s.lineRepo.ListByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		for _, l := range lines {
			out = append(out, Submission{Kind: models.KindProductLine, ProductLine: l})
		}
	}
	if kind == "" || kind == models.KindVariation {
		variations, err := s.variationRepo.ListByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		for _, v := range variations {
			out = append(out, Submission{Kind: models.KindVariation, Variation: v})
		}
	}
	return out, nil
}

// Decide applies a moderator decision. Re-applying the same decision is a
// no-op success. The optional reason is surfaced to the caller only; it is
// not persisted.
func (s *ModerationService) Decide(ctx context.Context, in DecideInput) (*Submission, error) {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.Status != models.StatusApproved && in.Status != models.StatusRejected {
		return nil, models.NewValidationError("Decision must be APPROVED or REJECTED")
	}
	if !in.Kind.Valid() {
		return nil, models.NewValidationError("Unknown submission type: " + string(in.Kind))
	}

	result := Submission{Kind: in.Kind}

	switch in.Kind {
	case models.KindBrand:
		brand, err := s.brandRepo.UpdateStatus(ctx, in.ID, in.Status)
		if err != nil {
			return nil, err
		}
		result.Brand = brand
		cache.Invalidate(ctx, cache.BrandStatsKey(brand.ID))
	case models.KindProductLine:
		line, err := s.lineRepo.UpdateStatus(ctx, in.ID, in.Status)
		if err != nil {
			return nil, err
		}
		result.ProductLine = line
		cache.Invalidate(ctx, cache.LineStatsKey(line.ID), cache.BrandStatsKey(line.BrandID))
	case models.KindVariation:
		variation, err := s.variationRepo.UpdateStatus(ctx, in.ID, in.Status)
		if err != nil {
			return nil, err
		}
		result.Variation = variation
		brandID := ""
		if line, lineErr := s.lineRepo.GetByID(ctx, variation.ProductLineID); lineErr == nil {
			brandID = line.BrandID
		}
		cache.InvalidateVariationStats(ctx, variation.ID, variation.ProductLineID, brandID)
	}

	observability.ModerationDecisions.WithLabelValues(string(in.Kind), string(in.Status)).Inc()
	return &result, nil
}

// requireAdmin fails closed: any lookup error denies access.
func (s *ModerationService) requireAdmin(ctx context.Context, userID string) error {
	if userID == "" {
		return models.NewUnauthorizedError("Authentication required")
	}
	if s.isAdmin == nil {
		return models.NewForbiddenError("Admin access required")
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil || !admin {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}
