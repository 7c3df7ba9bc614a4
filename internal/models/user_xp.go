package models

import "time"

// UserXP is the per-user ledger row. XPPoints stays in [0, domain.MaxXP] and
// never decreases; the only writer is the XP service's award path. Level is
// reserved for future tiering and is always 1 today.
type UserXP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	XPPoints  int       `gorm:"not null;default:0" json:"xp_points"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserXP) TableName() string { return "user_xp" }
