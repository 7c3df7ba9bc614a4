package repository

import (
	"strings"

	"converso/internal/models"

	"gorm.io/gorm"
)

type CompanionRepository struct {
	db *gorm.DB
}

func NewCompanionRepository(db *gorm.DB) *CompanionRepository {
	return &CompanionRepository{db: db}
}

func (r *CompanionRepository) Create(cp *models.Companion) error {
	return r.db.Create(cp).Error
}

func (r *CompanionRepository) GetByID(id uint) (*models.Companion, error) {
	var cp models.Companion
	err := r.db.First(&cp, id).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// List returns companions filtered by subject (case-insensitive substring) and/or
// topic, where the topic term also matches against the name column. Pagination
// follows the catalog page: limit + 1-based page.
func (r *CompanionRepository) List(subject, topic string, limit, page int) ([]models.Companion, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	q := r.db.Model(&models.Companion{})
	if subject != "" {
		q = q.Where("LOWER(subject) LIKE ?", "%"+strings.ToLower(subject)+"%")
	}
	if topic != "" {
		term := "%" + strings.ToLower(topic) + "%"
		q = q.Where("LOWER(topic) LIKE ? OR LOWER(name) LIKE ?", term, term)
	}
	var list []models.Companion
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, err
}

func (r *CompanionRepository) ListByAuthor(authorID uint) ([]models.Companion, error) {
	var list []models.Companion
	err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// CountByAuthor feeds both the stats aggregator and the creation permission gate.
func (r *CompanionRepository) CountByAuthor(authorID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Companion{}).Where("author_id = ?", authorID).Count(&c).Error
	return c, err
}

func (r *CompanionRepository) Update(cp *models.Companion) error {
	return r.db.Save(cp).Error
}
