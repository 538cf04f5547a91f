package service

import (
	"context"
	"math"
	"time"

	"reviewworld/internal/cache"
	"reviewworld/internal/models"
	"reviewworld/internal/repository"

	"gorm.io/gorm"
)

// StatsService recomputes aggregate review metrics on demand. Results are
// never stored in the database; Redis caching bounds recomputation cost and
// is explicitly invalidated on review and moderation writes.
type StatsService struct {
	db            *gorm.DB
	variationRepo repository.VariationRepository
}

func NewStatsService(db *gorm.DB, variationRepo repository.VariationRepository) *StatsService {
	return &StatsService{db: db, variationRepo: variationRepo}
}

// statsRow is the raw aggregate shape shared by the grouped queries.
type statsRow struct {
	VariationID   string
	ReviewCount   int64
	AvgRating     float64
	WouldBuyCount int64
}

func rowToStats(count, wouldBuy int64, avg float64) models.VariationStats {
	if count == 0 {
		return models.VariationStats{}
	}
	return models.VariationStats{
		AvgRating:            avg,
		ReviewCount:          int(count),
		WouldBuyAgainPercent: int(math.Round(100 * float64(wouldBuy) / float64(count))),
	}
}

// ComputeForVariation aggregates every review of the variation. Moderation
// status scopes which variations are reachable, not which reviews count.
func (s *StatsService) ComputeForVariation(ctx context.Context, variationID string) (models.VariationStats, error) {
	var stats models.VariationStats
	err := cache.Aside(ctx, cache.VariationStatsKey(variationID), &stats, cache.StatsTTL, func() error {
		var row statsRow
		err := s.db.WithContext(ctx).
			Table("reviews").
			Select("COUNT(*) as review_count, COALESCE(AVG(rating), 0) as avg_rating, COALESCE(SUM(CASE WHEN would_buy_again THEN 1 ELSE 0 END), 0) as would_buy_count").
			Where("variation_id = ?", variationID).
			Scan(&row).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		stats = rowToStats(row.ReviewCount, row.WouldBuyCount, row.AvgRating)
		return nil
	})
	return stats, err
}

// BatchCompute aggregates many variations in one grouped query. IDs with no
// reviews map to the zero value.
func (s *StatsService) BatchCompute(ctx context.Context, variationIDs []string) (map[string]models.VariationStats, error) {
	out := make(map[string]models.VariationStats, len(variationIDs))
	for _, id := range variationIDs {
		out[id] = models.VariationStats{}
	}
	if len(variationIDs) == 0 {
		return out, nil
	}

	var rows []statsRow
	err := s.db.WithContext(ctx).
		Table("reviews").
		Select("variation_id, COUNT(*) as review_count, COALESCE(AVG(rating), 0) as avg_rating, COALESCE(SUM(CASE WHEN would_buy_again THEN 1 ELSE 0 END), 0) as would_buy_count").
		Where("variation_id IN ?", variationIDs).
		Group("variation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		out[row.VariationID] = rowToStats(row.ReviewCount, row.WouldBuyCount, row.AvgRating)
	}
	return out, nil
}

// ComputeForProductLine flattens the reviews of the line's APPROVED
// variations into one review-weighted aggregate.
func (s *StatsService) ComputeForProductLine(ctx context.Context, lineID string) (models.VariationStats, error) {
	var stats models.VariationStats
	err := cache.Aside(ctx, cache.LineStatsKey(lineID), &stats, cache.StatsTTL, func() error {
		var row statsRow
		err := s.db.WithContext(ctx).
			Table("reviews").
			Select("COUNT(*) as review_count, COALESCE(AVG(rating), 0) as avg_rating, COALESCE(SUM(CASE WHEN would_buy_again THEN 1 ELSE 0 END), 0) as would_buy_count").
			Joins("JOIN variations ON variations.id = reviews.variation_id").
			Where("variations.product_line_id = ? AND variations.status = ?", lineID, models.StatusApproved).
			Scan(&row).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		stats = rowToStats(row.ReviewCount, row.WouldBuyCount, row.AvgRating)
		return nil
	})
	return stats, err
}

// ComputeForBrand flattens reviews under the brand's APPROVED lines and
// their APPROVED variations into one review-weighted aggregate.
func (s *StatsService) ComputeForBrand(ctx context.Context, brandID string) (models.VariationStats, error) {
	var stats models.VariationStats
	err := cache.Aside(ctx, cache.BrandStatsKey(brandID), &stats, cache.StatsTTL, func() error {
		var row statsRow
		err := s.db.WithContext(ctx).
			Table("reviews").
			Select("COUNT(*) as review_count, COALESCE(AVG(rating), 0) as avg_rating, COALESCE(SUM(CASE WHEN would_buy_again THEN 1 ELSE 0 END), 0) as would_buy_count").
			Joins("JOIN variations ON variations.id = reviews.variation_id").
			Joins("JOIN product_lines ON product_lines.id = variations.product_line_id").
			Where("product_lines.brand_id = ? AND variations.status = ? AND product_lines.status = ?",
				brandID, models.StatusApproved, models.StatusApproved).
			Scan(&row).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		stats = rowToStats(row.ReviewCount, row.WouldBuyCount, row.AvgRating)
		return nil
	})
	return stats, err
}

// RatingDistribution returns the 5..1 star buckets for a variation. Each
// bucket's percentage is rounded independently, so the column may not sum
// to exactly 100.
func (s *StatsService) RatingDistribution(ctx context.Context, variationID string) ([]models.RatingBucket, error) {
	var buckets []models.RatingBucket
	err := cache.Aside(ctx, cache.DistributionKey(variationID), &buckets, cache.StatsTTL, func() error {
		type bucketRow struct {
			Rating int
			Count  int64
		}
		var rows []bucketRow
		err := s.db.WithContext(ctx).
			Table("reviews").
			Select("rating, COUNT(*) as count").
			Where("variation_id = ?", variationID).
			Group("rating").
			Scan(&rows).Error
		if err != nil {
			return models.NewInternalError(err)
		}

		counts := map[int]int64{}
		var total int64
		for _, row := range rows {
			counts[row.Rating] = row.Count
			total += row.Count
		}

		buckets = make([]models.RatingBucket, 0, 5)
		for star := 5; star >= 1; star-- {
			b := models.RatingBucket{Star: star, Count: int(counts[star])}
			if total > 0 {
				b.PercentOfTotal = int(math.Round(100 * float64(counts[star]) / float64(total)))
			}
			buckets = append(buckets, b)
		}
		return nil
	})
	return buckets, err
}

// Trending ranks APPROVED variations by review count within the window,
// ties broken by variation id for a stable order. An empty window falls
// back to the same ranking over all time.
func (s *StatsService) Trending(ctx context.Context, limit, windowDays int) ([]*models.Variation, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	if windowDays < 1 {
		windowDays = 30
	}

	var variations []*models.Variation
	err := cache.Aside(ctx, cache.TrendingKey(limit, windowDays), &variations, cache.ListingTTL, func() error {
		cutoff := time.Now().AddDate(0, 0, -windowDays)
		ids, err := s.trendingIDs(ctx, limit, &cutoff)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			ids, err = s.trendingIDs(ctx, limit, nil)
			if err != nil {
				return err
			}
		}

		variations, err = s.loadRanked(ctx, ids)
		return err
	})
	return variations, err
}

func (s *StatsService) trendingIDs(ctx context.Context, limit int, cutoff *time.Time) ([]string, error) {
	type rankRow struct {
		VariationID string
		Count       int64
	}

	q := s.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.variation_id, COUNT(*) as count").
		Joins("JOIN variations ON variations.id = reviews.variation_id").
		Where("variations.status = ?", models.StatusApproved)
	if cutoff != nil {
		q = q.Where("reviews.created_at >= ?", *cutoff)
	}

	var rows []rankRow
	err := q.Group("reviews.variation_id").
		Order("count DESC, reviews.variation_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.VariationID)
	}
	return ids, nil
}

// RecentlyReviewed returns APPROVED variations ordered by their newest
// review, each variation appearing once.
func (s *StatsService) RecentlyReviewed(ctx context.Context, limit int) ([]*models.Variation, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var variations []*models.Variation
	err := cache.Aside(ctx, cache.RecentKey(limit), &variations, cache.ListingTTL, func() error {
		type recentRow struct {
			VariationID string
			Latest      time.Time
		}
		var rows []recentRow
		err := s.db.WithContext(ctx).
			Table("reviews").
			Select("reviews.variation_id, MAX(reviews.created_at) as latest").
			Joins("JOIN variations ON variations.id = reviews.variation_id").
			Where("variations.status = ?", models.StatusApproved).
			Group("reviews.variation_id").
			Order("latest DESC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return models.NewInternalError(err)
		}

		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.VariationID)
		}
		variations, err = s.loadRanked(ctx, ids)
		return err
	})
	return variations, err
}

// loadRanked fetches approved variations with stats attached, preserving
// the order of ids.
func (s *StatsService) loadRanked(ctx context.Context, ids []string) ([]*models.Variation, error) {
	if len(ids) == 0 {
		return []*models.Variation{}, nil
	}
	fetched, err := s.variationRepo.GetApprovedByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Variation, len(fetched))
	for _, v := range fetched {
		byID[v.ID] = v
	}

	stats, err := s.BatchCompute(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Variation, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			continue
		}
		st := stats[id]
		v.Stats = &st
		out = append(out, v)
	}
	return out, nil
}
