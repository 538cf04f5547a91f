package service

import (
	"context"
	"strings"

	"reviewworld/internal/cache"
	"reviewworld/internal/models"
	"reviewworld/internal/observability"
	"reviewworld/internal/repository"
)

// ReviewService handles creating, updating, and deleting reviews.
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	variationRepo repository.VariationRepository
	lineRepo      repository.ProductLineRepository
}

type CreateReviewInput struct {
	UserID        string
	VariationID   string
	Rating        int
	Title         string
	Body          string
	WouldBuyAgain bool
}

type UpdateReviewInput struct {
	UserID        string
	ReviewID      string
	Rating        int
	Title         string
	Body          string
	WouldBuyAgain bool
}

type DeleteReviewInput struct {
	UserID   string
	ReviewID string
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	variationRepo repository.VariationRepository,
	lineRepo repository.ProductLineRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		variationRepo: variationRepo,
		lineRepo:      lineRepo,
	}
}

func validateReviewFields(rating int, title, body string) error {
	const maxTitleLen = 120
	const minBodyLen = 10
	const maxBodyLen = 2000

	if rating < 1 || rating > 5 {
		return models.NewValidationError("Rating must be an integer between 1 and 5")
	}
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 120 characters)")
	}
	if len(body) < minBodyLen {
		return models.NewValidationError("Body too short (min 10 characters)")
	}
	if len(body) > maxBodyLen {
		return models.NewValidationError("Body too long (max 2000 characters)")
	}
	return nil
}

// CreateReview writes a review against an existing variation. Approval is
// not rechecked at write time; the unique index rejects a second review by
// the same user for the same variation.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	variation, err := s.variationRepo.GetByID(ctx, in.VariationID)
	if err != nil {
		return nil, err
	}
	if err := validateReviewFields(in.Rating, in.Title, in.Body); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:        in.UserID,
		VariationID:   in.VariationID,
		Rating:        in.Rating,
		Title:         strings.TrimSpace(in.Title),
		Body:          in.Body,
		WouldBuyAgain: in.WouldBuyAgain,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	observability.ReviewsWritten.WithLabelValues("create").Inc()
	s.invalidateStats(ctx, variation)
	return review, nil
}

// UpdateReview re-validates and replaces the mutable fields of the caller's
// own review.
func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own reviews")
	}
	if err := validateReviewFields(in.Rating, in.Title, in.Body); err != nil {
		return nil, err
	}

	review.Rating = in.Rating
	review.Title = strings.TrimSpace(in.Title)
	review.Body = in.Body
	review.WouldBuyAgain = in.WouldBuyAgain
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	observability.ReviewsWritten.WithLabelValues("update").Inc()
	if variation, verr := s.variationRepo.GetByID(ctx, review.VariationID); verr == nil {
		s.invalidateStats(ctx, variation)
	}
	return s.reviewRepo.GetByID(ctx, review.ID)
}

// DeleteReview removes the caller's own review along with reports filed
// against it.
func (s *ReviewService) DeleteReview(ctx context.Context, in DeleteReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own reviews")
	}

	if err := s.reviewRepo.Delete(ctx, in.ReviewID); err != nil {
		return nil, err
	}

	observability.ReviewsWritten.WithLabelValues("delete").Inc()
	if variation, verr := s.variationRepo.GetByID(ctx, review.VariationID); verr == nil {
		s.invalidateStats(ctx, variation)
	}
	return review, nil
}

// ListForVariation returns a variation's reviews newest-first with authors
// attached.
func (s *ReviewService) ListForVariation(ctx context.Context, variationID string) ([]*models.Review, error) {
	if _, err := s.variationRepo.GetByID(ctx, variationID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListForVariation(ctx, variationID)
}

// ListForUser returns a page of the user's reviews newest-first.
func (s *ReviewService) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}
	return s.reviewRepo.ListForUser(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *ReviewService) invalidateStats(ctx context.Context, variation *models.Variation) {
	brandID := ""
	if line, err := s.lineRepo.GetByID(ctx, variation.ProductLineID); err == nil {
		brandID = line.BrandID
	}
	cache.InvalidateVariationStats(ctx, variation.ID, variation.ProductLineID, brandID)
}
