package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductLine is a named product family under a brand.
type ProductLine struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	BrandID     string           `gorm:"size:36;not null;index" json:"brand_id"`
	Brand       *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Name        string           `gorm:"size:100;not null" json:"name"`
	Slug        string           `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string           `gorm:"type:text" json:"description"`
	ImageURL    string           `json:"image_url"`
	Status      ModerationStatus `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Variations []Variation `gorm:"foreignKey:ProductLineID" json:"variations,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (p *ProductLine) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
