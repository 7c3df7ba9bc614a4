package repository

import (
	"time"

	"converso/internal/domain"
	"converso/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) GetByCreator(creatorID uint) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := r.db.Where("creator_id = ?", creatorID).First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// GetByCode expects the caller to have upper-cased the code; stored codes are
// always upper-case, which makes the lookup effectively case-insensitive.
func (r *ReferralRepository) GetByCode(code string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := r.db.Where("code = ?", code).First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *ReferralRepository) Create(rc *models.ReferralCode) error {
	return r.db.Create(rc).Error
}

// Redeem performs the whole redemption as one transaction: the unused-to-used
// transition is a conditional update (losing a race surfaces as ErrAlreadyUsed),
// and the creator payout is keyed on the xp_awarded flag so it happens at most
// once even if an earlier attempt died between steps. The caller must ensure
// the creator's ledger row exists. It reports whether the payout ran.
func (r *ReferralRepository) Redeem(rc *models.ReferralCode, redeemerID uint) (bool, error) {
	paid := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.ReferralCode{}).
			Where("id = ? AND used_by_id IS NULL", rc.ID).
			Updates(map[string]interface{}{"used_by_id": redeemerID, "used_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyUsed
		}
		res = tx.Model(&models.ReferralCode{}).
			Where("id = ? AND xp_awarded = ?", rc.ID, false).
			Update("xp_awarded", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // creator was already paid by a previous partial redemption
		}
		if err := tx.Model(&models.UserXP{}).
			Where("user_id = ?", rc.CreatorID).
			UpdateColumn("xp_points", gorm.Expr("LEAST(xp_points + ?, ?)", domain.ReferralXP, domain.MaxXP)).Error; err != nil {
			return err
		}
		paid = true
		return nil
	})
	return paid, err
}
