package models

import "time"

// SessionHistory records one completed lesson session. Rows are append-only;
// the stats aggregator counts them on every evaluation pass.
type SessionHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CompanionID uint      `gorm:"not null;index" json:"companion_id"`
	DurationSec int       `json:"duration_sec"` // 0 when the client reported no timing
	CreatedAt   time.Time `json:"created_at"`

	Companion Companion `gorm:"foreignKey:CompanionID" json:"companion,omitempty"`
}

func (SessionHistory) TableName() string { return "session_history" }
