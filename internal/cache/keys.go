package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	VariationStatsKeyPrefix = "stats:variation:%s"
	LineStatsKeyPrefix      = "stats:line:%s"
	BrandStatsKeyPrefix     = "stats:brand:%s"
	DistributionKeyPrefix   = "stats:distribution:%s"
	TrendingKeyPrefix       = "trending:%d:%d"
	RecentKeyPrefix         = "recent:%d"
)

// StatsTTL bounds staleness of aggregate metrics between explicit
// invalidations. Overridable via SetStatsTTL from configuration.
var StatsTTL = 2 * time.Minute

// ListingTTL covers trending and recently-reviewed selections, which
// have no precise invalidation key and age out instead.
const ListingTTL = 60 * time.Second

// SetStatsTTL applies the configured stats cache TTL. Non-positive values
// keep the default.
func SetStatsTTL(seconds int) {
	if seconds > 0 {
		StatsTTL = time.Duration(seconds) * time.Second
	}
}

func VariationStatsKey(variationID string) string {
	return fmt.Sprintf(VariationStatsKeyPrefix, variationID)
}

func LineStatsKey(lineID string) string {
	return fmt.Sprintf(LineStatsKeyPrefix, lineID)
}

func BrandStatsKey(brandID string) string {
	return fmt.Sprintf(BrandStatsKeyPrefix, brandID)
}

func DistributionKey(variationID string) string {
	return fmt.Sprintf(DistributionKeyPrefix, variationID)
}

func TrendingKey(limit, windowDays int) string {
	return fmt.Sprintf(TrendingKeyPrefix, limit, windowDays)
}

func RecentKey(limit int) string {
	return fmt.Sprintf(RecentKeyPrefix, limit)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateVariationStats drops the per-variation aggregate keys along with
// the ancestor line and brand aggregates that flatten its reviews.
func InvalidateVariationStats(ctx context.Context, variationID, lineID, brandID string) {
	keys := []string{
		VariationStatsKey(variationID),
		DistributionKey(variationID),
	}
	if lineID != "" {
		keys = append(keys, LineStatsKey(lineID))
	}
	if brandID != "" {
		keys = append(keys, BrandStatsKey(brandID))
	}
	Invalidate(ctx, keys...)
}
