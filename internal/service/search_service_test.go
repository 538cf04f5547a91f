package service

import (
	"context"
	"testing"

	"reviewworld/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty query returns empty sections without hitting repos", func(t *testing.T) {
		t.Parallel()
		brandRepo := noopBrandRepo()
		brandRepo.searchApprovedFn = func(_ context.Context, _ string, _ int) ([]*models.Brand, error) {
			t.Fatal("brand search should not run for empty query")
			return nil, nil
		}
		svc := NewSearchService(brandRepo, noopVariationRepo())
		result, err := svc.Search(ctx, "   ", 5)
		require.NoError(t, err)
		assert.Empty(t, result.Brands)
		assert.Empty(t, result.Variations)
	})

	t.Run("caps brand hits at 3 and variation hits at limit", func(t *testing.T) {
		t.Parallel()
		var brandLimit, variationLimit int
		brandRepo := noopBrandRepo()
		brandRepo.searchApprovedFn = func(_ context.Context, _ string, limit int) ([]*models.Brand, error) {
			brandLimit = limit
			return []*models.Brand{{ID: "b1"}}, nil
		}
		variationRepo := noopVariationRepo()
		variationRepo.searchApprovedFn = func(_ context.Context, _ string, limit int) ([]*models.Variation, error) {
			variationLimit = limit
			return []*models.Variation{{ID: "v1"}}, nil
		}
		svc := NewSearchService(brandRepo, variationRepo)
		result, err := svc.Search(ctx, "oat", 2)
		require.NoError(t, err)
		assert.Equal(t, 3, brandLimit)
		assert.Equal(t, 2, variationLimit)
		assert.Len(t, result.Brands, 1)
		assert.Len(t, result.Variations, 1)
	})

	t.Run("oversized limit falls back to 5", func(t *testing.T) {
		t.Parallel()
		var variationLimit int
		variationRepo := noopVariationRepo()
		variationRepo.searchApprovedFn = func(_ context.Context, _ string, limit int) ([]*models.Variation, error) {
			variationLimit = limit
			return nil, nil
		}
		svc := NewSearchService(noopBrandRepo(), variationRepo)
		_, err := svc.Search(ctx, "oat", 100)
		require.NoError(t, err)
		assert.Equal(t, 5, variationLimit)
	})
}
