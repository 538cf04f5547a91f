package service

import (
	"context"
	"sort"

	"reviewworld/internal/models"
	"reviewworld/internal/repository"

	"gorm.io/gorm"
)

// BrandListPageSize is the fixed page size for public brand listings.
const BrandListPageSize = 12

// BrandSummary is one row of the public brand directory.
type BrandSummary struct {
	Brand     *models.Brand         `json:"brand"`
	LineCount int                   `json:"line_count"`
	Stats     models.VariationStats `json:"stats"`
}

// BrandListResult is a page of the brand directory.
type BrandListResult struct {
	Brands     []BrandSummary `json:"brands"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// CatalogService serves the public, APPROVED-only read paths.
type CatalogService struct {
	db            *gorm.DB
	brandRepo     repository.BrandRepository
	lineRepo      repository.ProductLineRepository
	variationRepo repository.VariationRepository
	stats         *StatsService
}

func NewCatalogService(
	db *gorm.DB,
	brandRepo repository.BrandRepository,
	lineRepo repository.ProductLineRepository,
	variationRepo repository.VariationRepository,
	stats *StatsService,
) *CatalogService {
	return &CatalogService{
		db:            db,
		brandRepo:     brandRepo,
		lineRepo:      lineRepo,
		variationRepo: variationRepo,
		stats:         stats,
	}
}

// ListBrands returns a directory page of APPROVED brands. Alpha sorts page
// in the database; rating and review-count sorts rank the whole filtered
// set by computed stats before slicing the page.
func (s *CatalogService) ListBrands(ctx context.Context, query, sortBy string, page int) (*BrandListResult, error) {
	if page < 1 {
		page = 1
	}

	switch sortBy {
	case "", "alpha", "alpha-desc":
		brands, total, err := s.brandRepo.ListApproved(ctx, repository.BrandListFilter{
			Query:  query,
			Sort:   sortBy,
			Limit:  BrandListPageSize,
			Offset: (page - 1) * BrandListPageSize,
		})
		if err != nil {
			return nil, err
		}
		summaries, err := s.summarize(ctx, brands)
		if err != nil {
			return nil, err
		}
		return pageResult(summaries, total, page), nil
	case "rating", "reviews":
		// Stat sorts rank every matching brand; the directory is small
		// enough that this stays a bounded scan.
		brands, total, err := s.brandRepo.ListApproved(ctx, repository.BrandListFilter{
			Query: query,
			Limit: 1000,
		})
		if err != nil {
			return nil, err
		}
		summaries, err := s.summarize(ctx, brands)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(summaries, func(i, j int) bool {
			if sortBy == "rating" {
				return summaries[i].Stats.AvgRating > summaries[j].Stats.AvgRating
			}
			return summaries[i].Stats.ReviewCount > summaries[j].Stats.ReviewCount
		})

		start := (page - 1) * BrandListPageSize
		if start > len(summaries) {
			start = len(summaries)
		}
		end := start + BrandListPageSize
		if end > len(summaries) {
			end = len(summaries)
		}
		return pageResult(summaries[start:end], total, page), nil
	default:
		return nil, models.NewValidationError("Unknown sort: " + sortBy)
	}
}

func pageResult(summaries []BrandSummary, total int64, page int) *BrandListResult {
	totalPages := int((total + BrandListPageSize - 1) / BrandListPageSize)
	return &BrandListResult{
		Brands:     summaries,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

func (s *CatalogService) summarize(ctx context.Context, brands []*models.Brand) ([]BrandSummary, error) {
	counts, err := s.approvedLineCounts(ctx, brands)
	if err != nil {
		return nil, err
	}

	summaries := make([]BrandSummary, 0, len(brands))
	for _, b := range brands {
		stats, err := s.stats.ComputeForBrand(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, BrandSummary{
			Brand:     b,
			LineCount: counts[b.ID],
			Stats:     stats,
		})
	}
	return summaries, nil
}

func (s *CatalogService) approvedLineCounts(ctx context.Context, brands []*models.Brand) (map[string]int, error) {
	counts := map[string]int{}
	if len(brands) == 0 {
		return counts, nil
	}
	ids := make([]string, 0, len(brands))
	for _, b := range brands {
		ids = append(ids, b.ID)
	}

	type countRow struct {
		BrandID string
		Count   int
	}
	var rows []countRow
	err := s.db.WithContext(ctx).
		Table("product_lines").
		Select("brand_id, COUNT(*) as count").
		Where("brand_id IN ? AND status = ?", ids, models.StatusApproved).
		Group("brand_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		counts[row.BrandID] = row.Count
	}
	return counts, nil
}

// BrandDetail is a brand page: the brand, its aggregate stats, and its
// APPROVED lines with per-line stats.
type BrandDetail struct {
	Brand *models.Brand         `json:"brand"`
	Stats models.VariationStats `json:"stats"`
	Lines []LineSummary         `json:"lines"`
}

type LineSummary struct {
	Line  *models.ProductLine   `json:"line"`
	Stats models.VariationStats `json:"stats"`
}

// GetBrandBySlug serves the public brand page for an APPROVED brand.
func (s *CatalogService) GetBrandBySlug(ctx context.Context, slug string) (*BrandDetail, error) {
	brand, err := s.brandRepo.GetApprovedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	brandStats, err := s.stats.ComputeForBrand(ctx, brand.ID)
	if err != nil {
		return nil, err
	}

	lines := make([]LineSummary, 0, len(brand.ProductLines))
	for i := range brand.ProductLines {
		line := &brand.ProductLines[i]
		lineStats, err := s.stats.ComputeForProductLine(ctx, line.ID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, LineSummary{Line: line, Stats: lineStats})
	}

	return &BrandDetail{Brand: brand, Stats: brandStats, Lines: lines}, nil
}

// LineDetail is a product-line page: the line with its brand, aggregate
// stats, and APPROVED variations with per-variation stats attached.
type LineDetail struct {
	Line       *models.ProductLine   `json:"line"`
	Stats      models.VariationStats `json:"stats"`
	Variations []*models.Variation   `json:"variations"`
}

// GetProductLine serves the public line page. The line must be APPROVED and
// belong to the APPROVED brand named in the path.
func (s *CatalogService) GetProductLine(ctx context.Context, brandSlug, lineSlug string) (*LineDetail, error) {
	line, err := s.lineRepo.GetApprovedBySlug(ctx, lineSlug)
	if err != nil {
		return nil, err
	}
	if line.Brand == nil || line.Brand.Slug != brandSlug || line.Brand.Status != models.StatusApproved {
		return nil, models.NewNotFoundError("Product line", lineSlug)
	}

	lineStats, err := s.stats.ComputeForProductLine(ctx, line.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(line.Variations))
	for i := range line.Variations {
		ids = append(ids, line.Variations[i].ID)
	}
	statsByID, err := s.stats.BatchCompute(ctx, ids)
	if err != nil {
		return nil, err
	}

	variations := make([]*models.Variation, 0, len(line.Variations))
	for i := range line.Variations {
		v := &line.Variations[i]
		st := statsByID[v.ID]
		v.Stats = &st
		variations = append(variations, v)
	}

	return &LineDetail{Line: line, Stats: lineStats, Variations: variations}, nil
}

// VariationDetail is a variation page: the variation with its ancestry,
// stats, and rating distribution.
type VariationDetail struct {
	Variation    *models.Variation     `json:"variation"`
	Stats        models.VariationStats `json:"stats"`
	Distribution []models.RatingBucket `json:"distribution"`
}

// GetVariationBySlug serves the public variation page. Ancestry slugs in
// the path must match and both ancestors must be APPROVED.
func (s *CatalogService) GetVariationBySlug(ctx context.Context, brandSlug, lineSlug, varSlug string) (*VariationDetail, error) {
	variation, err := s.variationRepo.GetApprovedBySlug(ctx, varSlug)
	if err != nil {
		return nil, err
	}
	line := variation.ProductLine
	if line == nil || line.Slug != lineSlug || line.Status != models.StatusApproved ||
		line.Brand == nil || line.Brand.Slug != brandSlug || line.Brand.Status != models.StatusApproved {
		return nil, models.NewNotFoundError("Variation", varSlug)
	}

	stats, err := s.stats.ComputeForVariation(ctx, variation.ID)
	if err != nil {
		return nil, err
	}
	distribution, err := s.stats.RatingDistribution(ctx, variation.ID)
	if err != nil {
		return nil, err
	}
	variation.Stats = &stats

	return &VariationDetail{Variation: variation, Stats: stats, Distribution: distribution}, nil
}
