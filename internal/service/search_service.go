package service

import (
	"context"
	"strings"

	"reviewworld/internal/models"
	"reviewworld/internal/repository"
)

// SearchResult holds the two sections of a quick-search response.
type SearchResult struct {
	Brands     []*models.Brand     `json:"brands"`
	Variations []*models.Variation `json:"variations"`
}

// SearchService answers quick lookups over the APPROVED catalog.
type SearchService struct {
	brandRepo     repository.BrandRepository
	variationRepo repository.VariationRepository
}

func NewSearchService(brandRepo repository.BrandRepository, variationRepo repository.VariationRepository) *SearchService {
	return &SearchService{brandRepo: brandRepo, variationRepo: variationRepo}
}

// Search matches up to 3 brands by name and up to min(limit, 5) variations
// by their own, line, or brand name, case-insensitively. An empty query
// returns empty sections rather than the whole catalog.
func (s *SearchService) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	const maxBrandHits = 3
	const maxVariationHits = 5

	result := &SearchResult{
		Brands:     []*models.Brand{},
		Variations: []*models.Variation{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}
	if limit < 1 || limit > maxVariationHits {
		limit = maxVariationHits
	}

	brands, err := s.brandRepo.SearchApproved(ctx, query, maxBrandHits)
	if err != nil {
		return nil, err
	}
	variations, err := s.variationRepo.SearchApproved(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	result.Brands = brands
	result.Variations = variations
	return result, nil
}
