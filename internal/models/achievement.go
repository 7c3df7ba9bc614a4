package models

import (
	"time"

	"converso/internal/domain"
)

// Achievement is one grant of a catalog achievement to a user. The composite
// unique index is the real idempotency backstop: the award path inserts with
// ON CONFLICT DO NOTHING and treats zero affected rows as "already granted".
type Achievement struct {
	ID              uint                   `gorm:"primaryKey" json:"id"`
	UserID          uint                   `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementType domain.AchievementType `gorm:"size:40;not null;uniqueIndex:idx_user_achievement" json:"achievement_type"`
	XPAwarded       int                    `gorm:"not null" json:"xp_awarded"` // reward snapshot at grant time
	CompletedAt     time.Time              `gorm:"autoCreateTime" json:"completed_at"`
}

func (Achievement) TableName() string { return "achievements" }
