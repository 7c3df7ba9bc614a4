package repository

import (
	"converso/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// InsertIfAbsent inserts the grant unless one already exists for the same
// (user, achievement type). It reports whether the row was actually inserted,
// letting the caller distinguish a fresh grant from an already-completed one
// without a separate existence check.
func (r *AchievementRepository) InsertIfAbsent(grant *models.Achievement) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(grant)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AchievementRepository) ListByUser(userID uint) ([]models.Achievement, error) {
	var list []models.Achievement
	err := r.db.Where("user_id = ?", userID).Order("completed_at DESC").Find(&list).Error
	return list, err
}
