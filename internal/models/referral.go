package models

import "time"

// ReferralCode is a unique invite code belonging to a user.
// Each user has at most one code; it can be redeemed exactly once.
type ReferralCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"uniqueIndex;size:32;not null" json:"code"`
	CreatorID uint       `gorm:"uniqueIndex;not null" json:"creator_id"`
	UsedByID  *uint      `json:"used_by_id,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	// XPAwarded guards the creator payout: it flips to true at most once,
	// inside the same transaction that marks the code used.
	XPAwarded bool      `gorm:"not null;default:false" json:"xp_awarded"`
	CreatedAt time.Time `json:"created_at"`

	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (ReferralCode) TableName() string { return "referral_codes" }
