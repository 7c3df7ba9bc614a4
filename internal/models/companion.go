package models

import (
	"time"

	"gorm.io/gorm"
)

// Companion is an AI tutor a user authored: a subject, a topic, and how the
// voice session should sound.
type Companion struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Name     string `gorm:"size:120;not null" json:"name"`
	Subject  string `gorm:"size:50;not null;index" json:"subject"`
	Topic    string `gorm:"size:255;not null" json:"topic"`
	Voice    string `gorm:"size:20;not null" json:"voice"` // male | female
	Style    string `gorm:"size:20;not null" json:"style"` // casual | formal
	Duration int    `gorm:"not null" json:"duration"`      // estimated lesson minutes
	ImageURL string `gorm:"size:512" json:"image_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Companion) TableName() string { return "companions" }
