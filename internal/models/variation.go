package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variation is a specific reviewable SKU or flavor under a product line.
type Variation struct {
	ID            string           `gorm:"primaryKey;size:36" json:"id"`
	ProductLineID string           `gorm:"size:36;not null;index" json:"product_line_id"`
	ProductLine   *ProductLine     `gorm:"foreignKey:ProductLineID" json:"product_line,omitempty"`
	Name          string           `gorm:"size:100;not null" json:"name"`
	Slug          string           `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description   string           `gorm:"type:text" json:"description"`
	ImageURL      string           `json:"image_url"`
	Tags          []string         `gorm:"serializer:json" json:"tags"`
	Status        ModerationStatus `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	Reviews []Review `gorm:"foreignKey:VariationID" json:"reviews,omitempty"`

	// Stats is not persisted; attached at query time by the stats service.
	Stats *VariationStats `gorm:"-" json:"stats,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (v *Variation) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VariationStats holds aggregate review metrics for a variation, product
// line, or brand. Always recomputed from current review rows.
type VariationStats struct {
	AvgRating            float64 `json:"avg_rating"`
	ReviewCount          int     `json:"review_count"`
	WouldBuyAgainPercent int     `json:"would_buy_again_percent"`
}

// RatingBucket is one star level of a rating distribution.
type RatingBucket struct {
	Star           int `json:"star"`
	Count          int `json:"count"`
	PercentOfTotal int `json:"percent_of_total"`
}
