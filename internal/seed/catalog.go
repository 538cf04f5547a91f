package seed

import (
	"fmt"

	"reviewworld/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInVariation is one curated SKU of the starter catalog.
type BuiltInVariation struct {
	Name string
	Slug string
	Tags []string
}

// BuiltInLine is one curated product line of the starter catalog.
type BuiltInLine struct {
	Name        string
	Slug        string
	Description string
	Variations  []BuiltInVariation
}

// BuiltInBrand is one curated brand of the starter catalog. The whole
// curated tree ships APPROVED so a fresh install has browsable pages.
type BuiltInBrand struct {
	Name        string
	Slug        string
	Description string
	Lines       []BuiltInLine
}

// BuiltInCatalog defines the permanent starter catalog.
var BuiltInCatalog = []BuiltInBrand{
	{
		Name: "Oatly", Slug: "oatly",
		Description: "Swedish oat drink company.",
		Lines: []BuiltInLine{
			{
				Name: "Oat Drink", Slug: "oat-drink",
				Description: "The original oat milk range.",
				Variations: []BuiltInVariation{
					{Name: "Barista Edition", Slug: "barista-edition", Tags: []string{"coffee", "frothable"}},
					{Name: "Semi", Slug: "semi", Tags: []string{"low-fat"}},
					{Name: "Whole", Slug: "whole", Tags: []string{"full-fat"}},
				},
			},
			{
				Name: "Oatgurt", Slug: "oatgurt",
				Description: "Oat-based yogurt alternatives.",
				Variations: []BuiltInVariation{
					{Name: "Plain", Slug: "oatgurt-plain", Tags: []string{"breakfast"}},
					{Name: "Strawberry", Slug: "oatgurt-strawberry", Tags: []string{"fruit"}},
				},
			},
		},
	},
	{
		Name: "Chobani", Slug: "chobani",
		Description: "Greek yogurt and dairy products.",
		Lines: []BuiltInLine{
			{
				Name: "Greek Yogurt", Slug: "greek-yogurt",
				Description: "Strained Greek-style yogurt.",
				Variations: []BuiltInVariation{
					{Name: "Plain Non-Fat", Slug: "plain-non-fat", Tags: []string{"protein", "plain"}},
					{Name: "Vanilla", Slug: "vanilla", Tags: []string{"dessert"}},
					{Name: "Black Cherry", Slug: "black-cherry", Tags: []string{"fruit-on-bottom"}},
				},
			},
		},
	},
	{
		Name: "Tony's Chocolonely", Slug: "tonys-chocolonely",
		Description: "Fair-trade chocolate bars.",
		Lines: []BuiltInLine{
			{
				Name: "Chocolate Bars", Slug: "chocolate-bars",
				Description: "Big uneven bars in loud wrappers.",
				Variations: []BuiltInVariation{
					{Name: "Milk Caramel Sea Salt", Slug: "milk-caramel-sea-salt", Tags: []string{"caramel", "bestseller"}},
					{Name: "Dark 70%", Slug: "dark-70", Tags: []string{"dark"}},
					{Name: "White Raspberry Popping Candy", Slug: "white-raspberry-popping-candy", Tags: []string{"white", "novelty"}},
				},
			},
		},
	},
}

// Catalog seeds the permanent starter catalog. Safe to run repeatedly;
// rows are upserted by slug.
func Catalog(db *gorm.DB) error {
	for _, item := range BuiltInCatalog {
		err := db.Transaction(func(tx *gorm.DB) error {
			brand := models.Brand{
				Name:        item.Name,
				Slug:        item.Slug,
				Description: item.Description,
				Status:      models.StatusApproved,
			}
			if err := upsertBySlug(tx, &brand, []string{"name", "description", "status", "updated_at"}); err != nil {
				return err
			}
			// BeforeCreate assigns a fresh UUID even when the upsert hit an
			// existing row, so reload to get the persisted ID.
			var storedBrand models.Brand
			if err := tx.Where("slug = ?", item.Slug).First(&storedBrand).Error; err != nil {
				return err
			}

			for _, lineItem := range item.Lines {
				line := models.ProductLine{
					BrandID:     storedBrand.ID,
					Name:        lineItem.Name,
					Slug:        lineItem.Slug,
					Description: lineItem.Description,
					Status:      models.StatusApproved,
				}
				if err := upsertBySlug(tx, &line, []string{"name", "description", "status", "updated_at"}); err != nil {
					return err
				}
				var storedLine models.ProductLine
				if err := tx.Where("slug = ?", lineItem.Slug).First(&storedLine).Error; err != nil {
					return err
				}

				for _, varItem := range lineItem.Variations {
					variation := models.Variation{
						ProductLineID: storedLine.ID,
						Name:          varItem.Name,
						Slug:          varItem.Slug,
						Tags:          varItem.Tags,
						Status:        models.StatusApproved,
					}
					if err := upsertBySlug(tx, &variation, []string{"name", "status", "updated_at"}); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seed built-in brand %s: %w", item.Slug, err)
		}
	}
	return nil
}

func upsertBySlug(tx *gorm.DB, value interface{}, updateColumns []string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(value).Error
}
