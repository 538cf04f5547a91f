package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a single user's rating of a variation. The composite unique
// index enforces at most one review per (user, variation) pair at the
// storage layer, so concurrent duplicate submissions resolve to one row.
type Review struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	UserID        string     `gorm:"size:36;not null;uniqueIndex:idx_reviews_user_variation" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	VariationID   string     `gorm:"size:36;not null;uniqueIndex:idx_reviews_user_variation;index" json:"variation_id"`
	Variation     *Variation `gorm:"foreignKey:VariationID" json:"variation,omitempty"`
	Rating        int        `gorm:"not null" json:"rating"`
	Title         string     `gorm:"size:120;not null" json:"title"`
	Body          string     `gorm:"type:text;not null" json:"body"`
	WouldBuyAgain bool       `gorm:"not null" json:"would_buy_again"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Reports []Report `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
