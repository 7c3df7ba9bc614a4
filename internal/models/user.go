package models

import (
	"strings"
	"time"

	"converso/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PublicID     string `gorm:"uniqueIndex;size:36;not null" json:"public_id"` // opaque id shared with collaborators
	Username     string `gorm:"uniqueIndex;size:64;not null;default:''" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	// Plan and Features mirror what the billing/entitlement provider reports.
	// They are read-only inputs here; nothing in this service sells upgrades.
	Plan      string         `gorm:"size:20;not null;default:'free';index" json:"plan"`
	Features  string         `gorm:"size:255;not null;default:''" json:"-"` // comma-separated feature flags
	GoogleID  *string        `gorm:"uniqueIndex;size:255" json:"-"`         // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL string         `gorm:"size:512" json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsPro() bool  { return u.Plan == domain.PlanPro }
func (u *User) IsCore() bool { return u.Plan == domain.PlanCore }

// HasFeature reports whether the entitlement provider granted the given flag.
func (u *User) HasFeature(feature string) bool {
	if u.Features == "" {
		return false
	}
	for _, f := range strings.Split(u.Features, ",") {
		if strings.TrimSpace(f) == feature {
			return true
		}
	}
	return false
}
