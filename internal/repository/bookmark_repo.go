package repository

import (
	"converso/internal/models"

	"gorm.io/gorm"
)

type BookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) Add(userID, companionID uint) error {
	return r.db.Create(&models.Bookmark{UserID: userID, CompanionID: companionID}).Error
}

func (r *BookmarkRepository) Remove(userID, companionID uint) error {
	return r.db.Where("user_id = ? AND companion_id = ?", userID, companionID).Delete(&models.Bookmark{}).Error
}

func (r *BookmarkRepository) IsBookmarked(userID, companionID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND companion_id = ?", userID, companionID).Count(&c).Error
	return c > 0, err
}

func (r *BookmarkRepository) ListByUser(userID uint, limit, offset int) ([]models.Bookmark, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.Bookmark
	err := r.db.Where("user_id = ?", userID).Preload("Companion").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
