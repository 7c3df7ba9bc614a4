package service

import (
	"errors"
	"log"

	"converso/internal/domain"
	"converso/internal/models"

	"gorm.io/gorm"
)

// XPLedgerStore is the slice of the store the ledger touches.
type XPLedgerStore interface {
	GetByUserID(userID uint) (*models.UserXP, error)
	Create(rec *models.UserXP) error
	AddPointsCapped(userID uint, amount int) (*models.UserXP, error)
}

// XPService owns the per-user XP balance. Balances only ever go up, and never
// past domain.MaxXP; there is deliberately no decrement operation.
type XPService struct {
	store XPLedgerStore
}

func NewXPService(store XPLedgerStore) *XPService {
	return &XPService{store: store}
}

// GetOrCreate returns the user's ledger row, lazily creating {0 XP, level 1}
// on first read.
func (s *XPService) GetOrCreate(userID uint) (*models.UserXP, error) {
	rec, err := s.store.GetByUserID(userID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	rec = &models.UserXP{UserID: userID, XPPoints: 0, Level: 1}
	if createErr := s.store.Create(rec); createErr != nil {
		// Lost a create race: another request inserted the row first.
		if existing, getErr := s.store.GetByUserID(userID); getErr == nil {
			return existing, nil
		}
		return nil, createErr
	}
	return rec, nil
}

// Award adds amount to the user's balance, clamped at MaxXP, and returns the
// updated row. Non-positive amounts are rejected; nothing in the engine ever
// issues one.
func (s *XPService) Award(userID uint, amount int) (*models.UserXP, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	before, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	after, err := s.store.AddPointsCapped(userID, amount)
	if err != nil {
		return nil, err
	}
	if before.XPPoints < domain.MaxXP && after.XPPoints >= domain.MaxXP {
		// No push anywhere; the permission gate sees this on its next read.
		log.Printf("user %d reached %d XP - pro access unlocked", userID, domain.MaxXP)
	}
	return after, nil
}
