package service

import (
	"context"
	"strings"

	"reviewworld/internal/models"
	"reviewworld/internal/observability"
	"reviewworld/internal/repository"
)

// ReportService files complaints against reviews. Reports are advisory;
// nothing is hidden or removed automatically.
type ReportService struct {
	reportRepo repository.ReportRepository
	reviewRepo repository.ReviewRepository
}

type FileReportInput struct {
	UserID   string
	ReviewID string
	Reason   models.ReportReason
	Comment  string
}

func NewReportService(reportRepo repository.ReportRepository, reviewRepo repository.ReviewRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, reviewRepo: reviewRepo}
}

// FileReport records a report against an existing review. The stored reason
// is the reason code, with the free-text comment appended after a colon
// when present. The same user may report the same review more than once.
func (s *ReportService) FileReport(ctx context.Context, in FileReportInput) (*models.Report, error) {
	const maxCommentLen = 500

	if _, err := s.reviewRepo.GetByID(ctx, in.ReviewID); err != nil {
		return nil, err
	}
	if !in.Reason.Valid() {
		return nil, models.NewValidationError("Reason must be one of: spam, offensive, incorrect, other")
	}
	comment := strings.TrimSpace(in.Comment)
	if len(comment) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 500 characters)")
	}

	reason := string(in.Reason)
	if comment != "" {
		reason = reason + ": " + comment
	}

	report := &models.Report{
		ReviewID: in.ReviewID,
		UserID:   in.UserID,
		Reason:   reason,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	observability.ReportsFiled.WithLabelValues(string(in.Reason)).Inc()
	return report, nil
}

// ListForReview returns a review's reports newest-first.
func (s *ReportService) ListForReview(ctx context.Context, reviewID string) ([]*models.Report, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return s.reportRepo.ListForReview(ctx, reviewID)
}
