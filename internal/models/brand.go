package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand is a top-level manufacturer or label entity.
type Brand struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	Name        string           `gorm:"size:100;not null" json:"name"`
	Slug        string           `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string           `gorm:"type:text" json:"description"`
	LogoURL     string           `json:"logo_url"`
	Status      ModerationStatus `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	ProductLines []ProductLine `gorm:"foreignKey:BrandID" json:"product_lines,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (b *Brand) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
