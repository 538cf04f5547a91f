package server

import (
	"strconv"

	"reviewworld/internal/models"
	"reviewworld/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBrands handles GET /api/brands?q=&sort=&page=
func (s *Server) GetBrands(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	result, err := s.catalogService.ListBrands(c.UserContext(), c.Query("q"), c.Query("sort"), page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}

// GetBrand handles GET /api/brands/:brandSlug
func (s *Server) GetBrand(c *fiber.Ctx) error {
	detail, err := s.catalogService.GetBrandBySlug(c.UserContext(), c.Params("brandSlug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(detail)
}

// GetProductLine handles GET /api/brands/:brandSlug/lines/:lineSlug
func (s *Server) GetProductLine(c *fiber.Ctx) error {
	detail, err := s.catalogService.GetProductLine(
		c.UserContext(), c.Params("brandSlug"), c.Params("lineSlug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(detail)
}

// GetVariation handles GET /api/brands/:brandSlug/lines/:lineSlug/variations/:varSlug
func (s *Server) GetVariation(c *fiber.Ctx) error {
	detail, err := s.catalogService.GetVariationBySlug(
		c.UserContext(), c.Params("brandSlug"), c.Params("lineSlug"), c.Params("varSlug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(detail)
}

// SubmitBrand handles POST /api/brands
func (s *Server) SubmitBrand(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		LogoURL     string `json:"logo_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	brand, err := s.moderationService.SubmitBrand(c.UserContext(), service.SubmitBrandInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

// SubmitProductLine handles POST /api/brands/:brandSlug/lines
func (s *Server) SubmitProductLine(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	line, err := s.moderationService.SubmitProductLine(c.UserContext(), service.SubmitProductLineInput{
		BrandSlug:   c.Params("brandSlug"),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// SubmitVariation handles POST /api/lines/:lineSlug/variations
func (s *Server) SubmitVariation(c *fiber.Ctx) error {
	var req struct {
		Name        string   `json:"name"`
		Slug        string   `json:"slug"`
		Description string   `json:"description"`
		ImageURL    string   `json:"image_url"`
		Tags        []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	variation, err := s.moderationService.SubmitVariation(c.UserContext(), service.SubmitVariationInput{
		LineSlug:    c.Params("lineSlug"),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(variation)
}
