package server

import (
	"strconv"

	"reviewworld/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Search handles GET /api/search?q=&limit=
func (s *Server) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))

	result, err := s.searchService.Search(c.UserContext(), c.Query("q"), limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}
