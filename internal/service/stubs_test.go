package service

import (
	"context"
	"errors"
	"testing"

	"reviewworld/internal/models"
	"reviewworld/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brandRepoStub is a stub for repository.BrandRepository.
type brandRepoStub struct {
	createFn            func(context.Context, *models.Brand) error
	getByIDFn           func(context.Context, string) (*models.Brand, error)
	getBySlugFn         func(context.Context, string) (*models.Brand, error)
	getApprovedBySlugFn func(context.Context, string) (*models.Brand, error)
	listApprovedFn      func(context.Context, repository.BrandListFilter) ([]*models.Brand, int64, error)
	listByStatusFn      func(context.Context, models.ModerationStatus) ([]*models.Brand, error)
	searchApprovedFn    func(context.Context, string, int) ([]*models.Brand, error)
	updateStatusFn      func(context.Context, string, models.ModerationStatus) (*models.Brand, error)
}

func (s *brandRepoStub) Create(ctx context.Context, b *models.Brand) error {
	return s.createFn(ctx, b)
}
func (s *brandRepoStub) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	return s.getByIDFn(ctx, id)
}
func (s *brandRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *brandRepoStub) GetApprovedBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	return s.getApprovedBySlugFn(ctx, slug)
}
func (s *brandRepoStub) ListApproved(ctx context.Context, f repository.BrandListFilter) ([]*models.Brand, int64, error) {
	return s.listApprovedFn(ctx, f)
}
func (s *brandRepoStub) ListByStatus(ctx context.Context, st models.ModerationStatus) ([]*models.Brand, error) {
	return s.listByStatusFn(ctx, st)
}
func (s *brandRepoStub) SearchApproved(ctx context.Context, q string, limit int) ([]*models.Brand, error) {
	return s.searchApprovedFn(ctx, q, limit)
}
func (s *brandRepoStub) UpdateStatus(ctx context.Context, id string, st models.ModerationStatus) (*models.Brand, error) {
	return s.updateStatusFn(ctx, id, st)
}

func noopBrandRepo() *brandRepoStub {
	return &brandRepoStub{
		createFn:  func(_ context.Context, _ *models.Brand) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Brand, error) { return &models.Brand{ID: id}, nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Brand, error) {
			return &models.Brand{ID: "brand-1", Slug: slug}, nil
		},
		getApprovedBySlugFn: func(_ context.Context, slug string) (*models.Brand, error) {
			return &models.Brand{ID: "brand-1", Slug: slug, Status: models.StatusApproved}, nil
		},
		listApprovedFn: func(_ context.Context, _ repository.BrandListFilter) ([]*models.Brand, int64, error) {
			return nil, 0, nil
		},
		listByStatusFn: func(_ context.Context, _ models.ModerationStatus) ([]*models.Brand, error) {
			return nil, nil
		},
		searchApprovedFn: func(_ context.Context, _ string, _ int) ([]*models.Brand, error) {
			return nil, nil
		},
		updateStatusFn: func(_ context.Context, id string, st models.ModerationStatus) (*models.Brand, error) {
			return &models.Brand{ID: id, Status: st}, nil
		},
	}
}

// lineRepoStub is a stub for repository.ProductLineRepository.
type lineRepoStub struct {
	createFn            func(context.Context, *models.ProductLine) error
	getByIDFn           func(context.Context, string) (*models.ProductLine, error)
	getBySlugFn         func(context.Context, string) (*models.ProductLine, error)
	getApprovedBySlugFn func(context.Context, string) (*models.ProductLine, error)
	listByStatusFn      func(context.Context, models.ModerationStatus) ([]*models.ProductLine, error)
	updateStatusFn      func(context.Context, string, models.ModerationStatus) (*models.ProductLine, error)
}

func (s *lineRepoStub) Create(ctx context.Context, l *models.ProductLine) error {
	return s.createFn(ctx, l)
}
func (s *lineRepoStub) GetByID(ctx context.Context, id string) (*models.ProductLine, error) {
	return s.getByIDFn(ctx, id)
}
func (s *lineRepoStub) GetBySlug(ctx context.Context, slug string) (*models.ProductLine, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *lineRepoStub) GetApprovedBySlug(ctx context.Context, slug string) (*models.ProductLine, error) {
	return s.getApprovedBySlugFn(ctx, slug)
}
func (s *lineRepoStub) ListByStatus(ctx context.Context, st models.ModerationStatus) ([]*models.ProductLine, error) {
	return s.listByStatusFn(ctx, st)
}
func (s *lineRepoStub) UpdateStatus(ctx context.Context, id string, st models.ModerationStatus) (*models.ProductLine, error) {
	return s.updateStatusFn(ctx, id, st)
}

func noopLineRepo() *lineRepoStub {
	return &lineRepoStub{
		createFn: func(_ context.Context, _ *models.ProductLine) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.ProductLine, error) {
			return &models.ProductLine{ID: id, BrandID: "brand-1"}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.ProductLine, error) {
			return &models.ProductLine{ID: "line-1", BrandID: "brand-1", Slug: slug}, nil
		},
		getApprovedBySlugFn: func(_ context.Context, slug string) (*models.ProductLine, error) {
			return &models.ProductLine{ID: "line-1", BrandID: "brand-1", Slug: slug, Status: models.StatusApproved}, nil
		},
		listByStatusFn: func(_ context.Context, _ models.ModerationStatus) ([]*models.ProductLine, error) {
			return nil, nil
		},
		updateStatusFn: func(_ context.Context, id string, st models.ModerationStatus) (*models.ProductLine, error) {
			return &models.ProductLine{ID: id, BrandID: "brand-1", Status: st}, nil
		},
	}
}

// variationRepoStub is a stub for repository.VariationRepository.
type variationRepoStub struct {
	createFn            func(context.Context, *models.Variation) error
	getByIDFn           func(context.Context, string) (*models.Variation, error)
	getBySlugFn         func(context.Context, string) (*models.Variation, error)
	getApprovedBySlugFn func(context.Context, string) (*models.Variation, error)
	getApprovedByIDsFn  func(context.Context, []string) ([]*models.Variation, error)
	listByStatusFn      func(context.Context, models.ModerationStatus) ([]*models.Variation, error)
	searchApprovedFn    func(context.Context, string, int) ([]*models.Variation, error)
	updateStatusFn      func(context.Context, string, models.ModerationStatus) (*models.Variation, error)
}

func (s *variationRepoStub) Create(ctx context.Context, v *models.Variation) error {
	return s.createFn(ctx, v)
}
func (s *variationRepoStub) GetByID(ctx context.Context, id string) (*models.Variation, error) {
	return s.getByIDFn(ctx, id)
}
func (s *variationRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Variation, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *variationRepoStub) GetApprovedBySlug(ctx context.Context, slug string) (*models.Variation, error) {
	return s.getApprovedBySlugFn(ctx, slug)
}
func (s *variationRepoStub) GetApprovedByIDs(ctx context.Context, ids []string) ([]*models.Variation, error) {
	return s.getApprovedByIDsFn(ctx, ids)
}
func (s *variationRepoStub) ListByStatus(ctx context.Context, st models.ModerationStatus) ([]*models.Variation, error) {
	return s.listByStatusFn(ctx, st)
}
func (s *variationRepoStub) SearchApproved(ctx context.Context, q string, limit int) ([]*models.Variation, error) {
	return s.searchApprovedFn(ctx, q, limit)
}
func (s *variationRepoStub) UpdateStatus(ctx context.Context, id string, st models.ModerationStatus) (*models.Variation, error) {
	return s.updateStatusFn(ctx, id, st)
}

func noopVariationRepo() *variationRepoStub {
	return &variationRepoStub{
		createFn: func(_ context.Context, _ *models.Variation) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Variation, error) {
			return &models.Variation{ID: id, ProductLineID: "line-1"}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.Variation, error) {
			return &models.Variation{ID: "var-1", ProductLineID: "line-1", Slug: slug}, nil
		},
		getApprovedBySlugFn: func(_ context.Context, slug string) (*models.Variation, error) {
			return &models.Variation{ID: "var-1", ProductLineID: "line-1", Slug: slug, Status: models.StatusApproved}, nil
		},
		getApprovedByIDsFn: func(_ context.Context, _ []string) ([]*models.Variation, error) {
			return nil, nil
		},
		listByStatusFn: func(_ context.Context, _ models.ModerationStatus) ([]*models.Variation, error) {
			return nil, nil
		},
		searchApprovedFn: func(_ context.Context, _ string, _ int) ([]*models.Variation, error) {
			return nil, nil
		},
		updateStatusFn: func(_ context.Context, id string, st models.ModerationStatus) (*models.Variation, error) {
			return &models.Variation{ID: id, ProductLineID: "line-1", Status: st}, nil
		},
	}
}

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	createFn           func(context.Context, *models.Review) error
	getByIDFn          func(context.Context, string) (*models.Review, error)
	updateFn           func(context.Context, *models.Review) error
	deleteFn           func(context.Context, string) error
	listForVariationFn func(context.Context, string) ([]*models.Review, error)
	listForUserFn      func(context.Context, string, int, int) ([]*models.Review, int64, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, r *models.Review) error {
	return s.createFn(ctx, r)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) Update(ctx context.Context, r *models.Review) error {
	return s.updateFn(ctx, r)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) ListForVariation(ctx context.Context, variationID string) ([]*models.Review, error) {
	return s.listForVariationFn(ctx, variationID)
}
func (s *reviewRepoStub) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*models.Review, int64, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn: func(_ context.Context, _ *models.Review) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Review, error) {
			return &models.Review{ID: id, UserID: "user-1", VariationID: "var-1"}, nil
		},
		updateFn: func(_ context.Context, _ *models.Review) error { return nil },
		deleteFn: func(_ context.Context, _ string) error { return nil },
		listForVariationFn: func(_ context.Context, _ string) ([]*models.Review, error) {
			return nil, nil
		},
		listForUserFn: func(_ context.Context, _ string, _, _ int) ([]*models.Review, int64, error) {
			return nil, 0, nil
		},
	}
}

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	createFn         func(context.Context, *models.Report) error
	listForReviewFn  func(context.Context, string) ([]*models.Report, error)
	countForReviewFn func(context.Context, string) (int64, error)
}

func (s *reportRepoStub) Create(ctx context.Context, r *models.Report) error {
	return s.createFn(ctx, r)
}
func (s *reportRepoStub) ListForReview(ctx context.Context, reviewID string) ([]*models.Report, error) {
	return s.listForReviewFn(ctx, reviewID)
}
func (s *reportRepoStub) CountForReview(ctx context.Context, reviewID string) (int64, error) {
	return s.countForReviewFn(ctx, reviewID)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn:         func(_ context.Context, _ *models.Report) error { return nil },
		listForReviewFn:  func(_ context.Context, _ string) ([]*models.Report, error) { return nil, nil },
		countForReviewFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, string) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateNameFn func(context.Context, string, string) (*models.User, error)
	deleteFn     func(context.Context, string) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	return s.updateNameFn(ctx, id, name)
}
func (s *userRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateNameFn: func(_ context.Context, id, name string) (*models.User, error) {
			return &models.User{ID: id, Name: name}, nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

func alwaysAdmin(_ context.Context, _ string) (bool, error) { return true, nil }

func neverAdmin(_ context.Context, _ string) (bool, error) { return false, nil }

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}
