package repository

import (
	"converso/internal/domain"
	"converso/internal/models"

	"gorm.io/gorm"
)

type XPRepository struct {
	db *gorm.DB
}

func NewXPRepository(db *gorm.DB) *XPRepository {
	return &XPRepository{db: db}
}

func (r *XPRepository) GetByUserID(userID uint) (*models.UserXP, error) {
	var rec models.UserXP
	err := r.db.Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *XPRepository) Create(rec *models.UserXP) error {
	return r.db.Create(rec).Error
}

// AddPointsCapped increments the ledger in a single statement, clamping at the
// ceiling, then returns the updated row. The clamp lives in the UPDATE itself
// so concurrent awards cannot overshoot MaxXP.
func (r *XPRepository) AddPointsCapped(userID uint, amount int) (*models.UserXP, error) {
	err := r.db.Model(&models.UserXP{}).
		Where("user_id = ?", userID).
		UpdateColumn("xp_points", gorm.Expr("LEAST(xp_points + ?, ?)", amount, domain.MaxXP)).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(userID)
}
