package server

import (
	"reviewworld/internal/middleware"
	"reviewworld/internal/models"
	"reviewworld/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSubmissions handles GET /api/admin/submissions?type=&status=
func (s *Server) GetSubmissions(c *fiber.Ctx) error {
	submissions, err := s.moderationService.ListSubmissions(
		c.UserContext(),
		middleware.CallerID(c),
		models.SubmissionKind(c.Query("type")),
		models.ModerationStatus(c.Query("status")),
	)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"submissions": submissions})
}

// DecideSubmission handles PATCH /api/admin/submissions/:type/:id
func (s *Server) DecideSubmission(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.moderationService.Decide(c.UserContext(), service.DecideInput{
		UserID: middleware.CallerID(c),
		Kind:   models.SubmissionKind(c.Params("type")),
		ID:     c.Params("id"),
		Status: models.ModerationStatus(req.Status),
		Reason: req.Reason,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}
