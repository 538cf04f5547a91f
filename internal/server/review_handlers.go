package server

import (
	"strconv"

	"reviewworld/internal/middleware"
	"reviewworld/internal/models"
	"reviewworld/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVariationStats handles GET /api/variations/:id/stats
func (s *Server) GetVariationStats(c *fiber.Ctx) error {
	variationID := c.Params("id")

	stats, err := s.statsService.ComputeForVariation(c.UserContext(), variationID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	distribution, err := s.statsService.RatingDistribution(c.UserContext(), variationID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"stats":        stats,
		"distribution": distribution,
	})
}

// GetVariationReviews handles GET /api/variations/:id/reviews
func (s *Server) GetVariationReviews(c *fiber.Ctx) error {
	reviews, err := s.reviewService.ListForVariation(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// GetTrending handles GET /api/variations/trending?limit=&window_days=
func (s *Server) GetTrending(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	windowDays, _ := strconv.Atoi(c.Query("window_days", "30"))

	variations, err := s.statsService.Trending(c.UserContext(), limit, windowDays)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"variations": variations})
}

// GetRecentlyReviewed handles GET /api/variations/recent?limit=
func (s *Server) GetRecentlyReviewed(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	variations, err := s.statsService.RecentlyReviewed(c.UserContext(), limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"variations": variations})
}

// CreateReview handles POST /api/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req struct {
		VariationID   string `json:"variation_id"`
		Rating        int    `json:"rating"`
		Title         string `json:"title"`
		Body          string `json:"body"`
		WouldBuyAgain bool   `json:"would_buy_again"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.UserContext(), service.CreateReviewInput{
		UserID:        middleware.CallerID(c),
		VariationID:   req.VariationID,
		Rating:        req.Rating,
		Title:         req.Title,
		Body:          req.Body,
		WouldBuyAgain: req.WouldBuyAgain,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReview handles PUT /api/reviews/:id
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	var req struct {
		Rating        int    `json:"rating"`
		Title         string `json:"title"`
		Body          string `json:"body"`
		WouldBuyAgain bool   `json:"would_buy_again"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.UpdateReview(c.UserContext(), service.UpdateReviewInput{
		UserID:        middleware.CallerID(c),
		ReviewID:      c.Params("id"),
		Rating:        req.Rating,
		Title:         req.Title,
		Body:          req.Body,
		WouldBuyAgain: req.WouldBuyAgain,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	_, err := s.reviewService.DeleteReview(c.UserContext(), service.DeleteReviewInput{
		UserID:   middleware.CallerID(c),
		ReviewID: c.Params("id"),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
