package service

import (
	"context"
	"strings"
	"testing"

	"reviewworld/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_FileReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing review is not found", func(t *testing.T) {
		t.Parallel()
		reviewRepo := noopReviewRepo()
		reviewRepo.getByIDFn = func(_ context.Context, id string) (*models.Review, error) {
			return nil, models.NewNotFoundError("Review", id)
		}
		svc := NewReportService(noopReportRepo(), reviewRepo)
		_, err := svc.FileReport(ctx, FileReportInput{UserID: "user-1", ReviewID: "ghost", Reason: models.ReasonSpam})
		assertNotFoundError(t, err)
	})

	t.Run("unknown reason is invalid", func(t *testing.T) {
		t.Parallel()
		svc := NewReportService(noopReportRepo(), noopReviewRepo())
		_, err := svc.FileReport(ctx, FileReportInput{UserID: "user-1", ReviewID: "rev-1", Reason: "rude"})
		assertValidationError(t, err)
	})

	t.Run("comment too long is invalid", func(t *testing.T) {
		t.Parallel()
		svc := NewReportService(noopReportRepo(), noopReviewRepo())
		_, err := svc.FileReport(ctx, FileReportInput{
			UserID:   "user-1",
			ReviewID: "rev-1",
			Reason:   models.ReasonOther,
			Comment:  strings.Repeat("x", 501),
		})
		assertValidationError(t, err)
	})

	t.Run("reason and comment are joined", func(t *testing.T) {
		t.Parallel()
		var created *models.Report
		reportRepo := noopReportRepo()
		reportRepo.createFn = func(_ context.Context, r *models.Report) error {
			created = r
			return nil
		}
		svc := NewReportService(reportRepo, noopReviewRepo())
		report, err := svc.FileReport(ctx, FileReportInput{
			UserID:   "user-1",
			ReviewID: "rev-1",
			Reason:   models.ReasonSpam,
			Comment:  "fake",
		})
		require.NoError(t, err)
		assert.Equal(t, "spam: fake", created.Reason)
		assert.Equal(t, "rev-1", report.ReviewID)
	})

	t.Run("bare reason without comment", func(t *testing.T) {
		t.Parallel()
		var created *models.Report
		reportRepo := noopReportRepo()
		reportRepo.createFn = func(_ context.Context, r *models.Report) error {
			created = r
			return nil
		}
		svc := NewReportService(reportRepo, noopReviewRepo())
		_, err := svc.FileReport(ctx, FileReportInput{UserID: "user-1", ReviewID: "rev-1", Reason: models.ReasonOffensive})
		require.NoError(t, err)
		assert.Equal(t, "offensive", created.Reason)
	})

	t.Run("same user may report twice", func(t *testing.T) {
		t.Parallel()
		calls := 0
		reportRepo := noopReportRepo()
		reportRepo.createFn = func(_ context.Context, _ *models.Report) error {
			calls++
			return nil
		}
		svc := NewReportService(reportRepo, noopReviewRepo())
		in := FileReportInput{UserID: "user-1", ReviewID: "rev-1", Reason: models.ReasonSpam}
		_, err := svc.FileReport(ctx, in)
		require.NoError(t, err)
		_, err = svc.FileReport(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
}
