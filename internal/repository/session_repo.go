package repository

import (
	"converso/internal/models"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(s *models.SessionHistory) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) CountByUser(userID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.SessionHistory{}).Where("user_id = ?", userID).Count(&c).Error
	return c, err
}

// ListByUserWithCompanion returns every session row for the user with its
// companion joined. The science-lesson counter filters this in memory, so the
// cost grows with the user's total session count.
func (r *SessionRepository) ListByUserWithCompanion(userID uint) ([]models.SessionHistory, error) {
	var list []models.SessionHistory
	err := r.db.Where("user_id = ?", userID).Preload("Companion").Find(&list).Error
	return list, err
}

func (r *SessionRepository) ListRecent(limit int) ([]models.SessionHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	var list []models.SessionHistory
	err := r.db.Preload("Companion").Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *SessionRepository) ListByUser(userID uint, limit, offset int) ([]models.SessionHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.SessionHistory
	err := r.db.Where("user_id = ?", userID).Preload("Companion").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
