package service

import (
	"context"
	"strings"
	"testing"

	"reviewworld/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_SubmitBrand_Validation(t *testing.T) {
	t.Parallel()

	svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
	ctx := context.Background()

	tests := []struct {
		name  string
		input SubmitBrandInput
	}{
		{"empty name", SubmitBrandInput{Name: ""}},
		{"whitespace name", SubmitBrandInput{Name: "   "}},
		{"name too long", SubmitBrandInput{Name: strings.Repeat("x", 101)}},
		{"description too long", SubmitBrandInput{Name: "Oatly", Description: strings.Repeat("x", 1001)}},
		{"bad logo URL", SubmitBrandInput{Name: "Oatly", LogoURL: "not-a-url"}},
		{"bad explicit slug", SubmitBrandInput{Name: "Oatly", Slug: "Not A Slug!"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.SubmitBrand(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestModerationService_SubmitBrand_SlugDerivation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("slug derived from name", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		brand, err := svc.SubmitBrand(ctx, SubmitBrandInput{Name: "Oat Drink!!"})
		require.NoError(t, err)
		assert.Equal(t, "oat-drink", brand.Slug)
		assert.Equal(t, models.StatusPending, brand.Status)
	})

	t.Run("explicit slug wins over derivation", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		brand, err := svc.SubmitBrand(ctx, SubmitBrandInput{Name: "Oat Drink", Slug: "custom-slug"})
		require.NoError(t, err)
		assert.Equal(t, "custom-slug", brand.Slug)
	})

	t.Run("symbols-only name cannot derive a slug", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		_, err := svc.SubmitBrand(ctx, SubmitBrandInput{Name: "!!!"})
		assertAppErrorCode(t, err, models.CodeSlug)
	})

	t.Run("duplicate slug surfaces as conflict", func(t *testing.T) {
		t.Parallel()
		brandRepo := noopBrandRepo()
		brandRepo.createFn = func(_ context.Context, _ *models.Brand) error {
			return models.NewConflictError("A brand with this slug already exists")
		}
		svc := NewModerationService(brandRepo, noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		_, err := svc.SubmitBrand(ctx, SubmitBrandInput{Name: "Oatly"})
		assertConflictError(t, err)
	})
}

func TestModerationService_SubmitProductLine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown parent brand", func(t *testing.T) {
		t.Parallel()
		brandRepo := noopBrandRepo()
		brandRepo.getBySlugFn = func(_ context.Context, slug string) (*models.Brand, error) {
			return nil, models.NewNotFoundError("Brand", slug)
		}
		svc := NewModerationService(brandRepo, noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		_, err := svc.SubmitProductLine(ctx, SubmitProductLineInput{BrandSlug: "nope", Name: "Barista"})
		assertNotFoundError(t, err)
	})

	t.Run("links line to resolved brand", func(t *testing.T) {
		t.Parallel()
		var created *models.ProductLine
		lineRepo := noopLineRepo()
		lineRepo.createFn = func(_ context.Context, l *models.ProductLine) error {
			created = l
			return nil
		}
		svc := NewModerationService(noopBrandRepo(), lineRepo, noopVariationRepo(), alwaysAdmin)
		line, err := svc.SubmitProductLine(ctx, SubmitProductLineInput{BrandSlug: "oatly", Name: "Barista Edition"})
		require.NoError(t, err)
		assert.Equal(t, "brand-1", created.BrandID)
		assert.Equal(t, "barista-edition", line.Slug)
		assert.Equal(t, models.StatusPending, line.Status)
	})
}

func TestModerationService_SubmitVariation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown parent line", func(t *testing.T) {
		t.Parallel()
		lineRepo := noopLineRepo()
		lineRepo.getBySlugFn = func(_ context.Context, slug string) (*models.ProductLine, error) {
			return nil, models.NewNotFoundError("Product line", slug)
		}
		svc := NewModerationService(noopBrandRepo(), lineRepo, noopVariationRepo(), alwaysAdmin)
		_, err := svc.SubmitVariation(ctx, SubmitVariationInput{LineSlug: "nope", Name: "Chocolate"})
		assertNotFoundError(t, err)
	})

	t.Run("carries tags through", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		variation, err := svc.SubmitVariation(ctx, SubmitVariationInput{
			LineSlug: "barista",
			Name:     "Chocolate Oat Milk",
			Tags:     []string{"chocolate", "barista"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"chocolate", "barista"}, variation.Tags)
		assert.Equal(t, "line-1", variation.ProductLineID)
	})
}

func TestModerationService_ListSubmissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("non-admin is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), neverAdmin)
		_, err := svc.ListSubmissions(ctx, "user-1", "", "")
		assertForbiddenError(t, err)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		_, err := svc.ListSubmissions(ctx, "", "", "")
		assertUnauthorizedError(t, err)
	})

	t.Run("defaults to PENDING across all kinds", func(t *testing.T) {
		t.Parallel()
		var seen []models.ModerationStatus
		brandRepo := noopBrandRepo()
		brandRepo.listByStatusFn = func(_ context.Context, st models.ModerationStatus) ([]*models.Brand, error) {
			seen = append(seen, st)
			return []*models.Brand{{ID: "b1"}}, nil
		}
		lineRepo := noopLineRepo()
		lineRepo.listByStatusFn = func(_ context.Context, st models.ModerationStatus) ([]*models.ProductLine, error) {
			seen = append(seen, st)
			return []*models.ProductLine{{ID: "l1"}}, nil
		}
		variationRepo := noopVariationRepo()
		variationRepo.listByStatusFn = func(_ context.Context, st models.ModerationStatus) ([]*models.Variation, error) {
			seen = append(seen, st)
			return []*models.Variation{{ID: "v1"}}, nil
		}

		svc := NewModerationService(brandRepo, lineRepo, variationRepo, alwaysAdmin)
		subs, err := svc.ListSubmissions(ctx, "admin-1", "", "")
		require.NoError(t, err)
		assert.Len(t, subs, 3)
		for _, st := range seen {
			assert.Equal(t, models.StatusPending, st)
		}
	})

	t.Run("kind filter narrows to one repo", func(t *testing.T) {
		t.Parallel()
		variationRepo := noopVariationRepo()
		variationRepo.listByStatusFn = func(_ context.Context, _ models.ModerationStatus) ([]*models.Variation, error) {
			return []*models.Variation{{ID: "v1"}, {ID: "v2"}}, nil
		}
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), variationRepo, alwaysAdmin)
		subs, err := svc.ListSubmissions(ctx, "admin-1", models.KindVariation, models.StatusRejected)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, models.KindVariation, subs[0].Kind)
	})

	t.Run("unknown kind is invalid", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		_, err := svc.ListSubmissions(ctx, "admin-1", "gadget", "")
		assertValidationError(t, err)
	})
}

func TestModerationService_Decide(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("non-admin is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), neverAdmin)
		_, err := svc.Decide(ctx, DecideInput{UserID: "user-1", Kind: models.KindBrand, ID: "b1", Status: models.StatusApproved})
		assertForbiddenError(t, err)
	})

	t.Run("PENDING is not a decision", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		_, err := svc.Decide(ctx, DecideInput{UserID: "admin-1", Kind: models.KindBrand, ID: "b1", Status: models.StatusPending})
		assertValidationError(t, err)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()
		brandRepo := noopBrandRepo()
		brandRepo.updateStatusFn = func(_ context.Context, id string, _ models.ModerationStatus) (*models.Brand, error) {
			return nil, models.NewNotFoundError("Brand", id)
		}
		svc := NewModerationService(brandRepo, noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		_, err := svc.Decide(ctx, DecideInput{UserID: "admin-1", Kind: models.KindBrand, ID: "ghost", Status: models.StatusApproved})
		assertNotFoundError(t, err)
	})

	t.Run("repeating a decision succeeds", func(t *testing.T) {
		t.Parallel()
		status := models.StatusPending
		brandRepo := noopBrandRepo()
		brandRepo.updateStatusFn = func(_ context.Context, id string, st models.ModerationStatus) (*models.Brand, error) {
			status = st
			return &models.Brand{ID: id, Status: st}, nil
		}
		svc := NewModerationService(brandRepo, noopLineRepo(), noopVariationRepo(), alwaysAdmin)

		in := DecideInput{UserID: "admin-1", Kind: models.KindBrand, ID: "b1", Status: models.StatusApproved}
		first, err := svc.Decide(ctx, in)
		require.NoError(t, err)
		second, err := svc.Decide(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, first.Brand.Status, second.Brand.Status)
		assert.Equal(t, models.StatusApproved, status)
	})

	t.Run("reason is accepted but not stored", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopBrandRepo(), noopLineRepo(), noopVariationRepo(), alwaysAdmin)
		result, err := svc.Decide(ctx, DecideInput{
			UserID: "admin-1",
			Kind:   models.KindBrand,
			ID:     "b1",
			Status: models.StatusRejected,
			Reason: "duplicate of an existing brand",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, result.Brand.Status)
	})
}
