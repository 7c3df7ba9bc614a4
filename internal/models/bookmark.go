package models

import "time"

// Bookmark marks a companion a user saved for later. One row per (user, companion).
type Bookmark struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_companion" json:"user_id"`
	CompanionID uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_companion" json:"companion_id"`
	CreatedAt   time.Time `json:"created_at"`

	Companion Companion `gorm:"foreignKey:CompanionID" json:"companion,omitempty"`
}

func (Bookmark) TableName() string { return "bookmarks" }
