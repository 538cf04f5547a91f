package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportReason is a user-selected complaint category.
type ReportReason string

const (
	ReasonSpam      ReportReason = "spam"
	ReasonOffensive ReportReason = "offensive"
	ReasonIncorrect ReportReason = "incorrect"
	ReasonOther     ReportReason = "other"
)

// Valid reports whether r is a known report reason.
func (r ReportReason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonOffensive, ReasonIncorrect, ReasonOther:
		return true
	}
	return false
}

// Report records a user-filed complaint against a review. Multiple reports
// may target the same review; nothing is acted on automatically.
type Report struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ReviewID  string    `gorm:"size:36;not null;index" json:"review_id"`
	Review    *Review   `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Reason    string    `gorm:"size:520;not null" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (r *Report) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
