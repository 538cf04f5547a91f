package models

// ModerationStatus defines the moderation state shared by brands, product
// lines, and variations.
type ModerationStatus string

const (
	// StatusPending indicates a submission awaiting a moderator decision.
	StatusPending ModerationStatus = "PENDING"
	// StatusApproved indicates an entity visible on all public read paths.
	StatusApproved ModerationStatus = "APPROVED"
	// StatusRejected indicates a submission declined by a moderator.
	StatusRejected ModerationStatus = "REJECTED"
)

// Valid reports whether s is one of the known moderation states.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// SubmissionKind identifies which entity kind a submission or moderation
// decision targets.
type SubmissionKind string

const (
	KindBrand       SubmissionKind = "brand"
	KindProductLine SubmissionKind = "productLine"
	KindVariation   SubmissionKind = "variation"
)

// Valid reports whether k is a known submission kind.
func (k SubmissionKind) Valid() bool {
	switch k {
	case KindBrand, KindProductLine, KindVariation:
		return true
	}
	return false
}
