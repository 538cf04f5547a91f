package server

import (
	"reviewworld/internal/middleware"
	"reviewworld/internal/models"
	"reviewworld/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reports
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		ReviewID string `json:"review_id"`
		Reason   string `json:"reason"`
		Comment  string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.FileReport(c.UserContext(), service.FileReportInput{
		UserID:   middleware.CallerID(c),
		ReviewID: req.ReviewID,
		Reason:   models.ReportReason(req.Reason),
		Comment:  req.Comment,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}
