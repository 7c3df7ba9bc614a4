package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"

	"converso/internal/domain"
	"converso/internal/models"

	"gorm.io/gorm"
)

type ReferralStore interface {
	GetByCreator(creatorID uint) (*models.ReferralCode, error)
	GetByCode(code string) (*models.ReferralCode, error)
	Create(rc *models.ReferralCode) error
	Redeem(rc *models.ReferralCode, redeemerID uint) (bool, error)
}

// GenerateResult reports the creator's code and whether it existed before.
type GenerateResult struct {
	Code          string `json:"code"`
	AlreadyExists bool   `json:"already_exists"`
}

type ReferralService struct {
	store    ReferralStore
	users    UserReader
	ledger   LedgerReader
	notifier Notifier
}

func NewReferralService(store ReferralStore, users UserReader, ledger LedgerReader, notifier Notifier) *ReferralService {
	return &ReferralService{store: store, users: users, ledger: ledger, notifier: notifier}
}

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomBase36(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, v := range b {
		out[i] = base36Chars[int(v)%len(base36Chars)]
	}
	return string(out), nil
}

// Generate returns the creator's referral code, minting one on first call.
// Codes look like REF-<first 8 of the creator's public id>-<6 random base36>,
// all upper-case. A collision on the code's unique index is retried with a
// fresh suffix.
func (s *ReferralService) Generate(creatorID uint) (*GenerateResult, error) {
	rc, err := s.store.GetByCreator(creatorID)
	if err == nil {
		return &GenerateResult{Code: rc.Code, AlreadyExists: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	u, err := s.users.GetByID(creatorID)
	if err != nil {
		return nil, err
	}
	prefix := strings.ToUpper(u.PublicID)
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	for i := 0; i < 10; i++ {
		suffix, err := randomBase36(6)
		if err != nil {
			return nil, err
		}
		rc := &models.ReferralCode{Code: fmt.Sprintf("REF-%s-%s", prefix, suffix), CreatorID: creatorID}
		if err := s.store.Create(rc); err != nil {
			// Either the code collided or a concurrent call minted the
			// creator's row first; the latter is the one we can resolve.
			if existing, getErr := s.store.GetByCreator(creatorID); getErr == nil {
				return &GenerateResult{Code: existing.Code, AlreadyExists: true}, nil
			}
			continue
		}
		return &GenerateResult{Code: rc.Code, AlreadyExists: false}, nil
	}
	return nil, fmt.Errorf("failed to generate a unique referral code after retries")
}

// GetForCreator returns the creator's code without minting one; a missing code
// is reported as nil, not an error.
func (s *ReferralService) GetForCreator(creatorID uint) (*models.ReferralCode, error) {
	rc, err := s.store.GetByCreator(creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rc, nil
}

// Redeem marks the code used by redeemerID and pays the creator ReferralXP
// exactly once. Lookup is case-insensitive. The used transition and the payout
// run in one store transaction, so a redemption can never end up half-applied.
func (s *ReferralService) Redeem(redeemerID uint, code string) error {
	rc, err := s.store.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidCode
		}
		return err
	}
	if rc.UsedByID != nil {
		return domain.ErrAlreadyUsed
	}
	if rc.CreatorID == redeemerID {
		return domain.ErrSelfReferral
	}
	// The payout updates the creator's ledger row in place; make sure it exists.
	if _, err := s.ledger.GetOrCreate(rc.CreatorID); err != nil {
		return err
	}
	paid, err := s.store.Redeem(rc, redeemerID)
	if err != nil {
		return err
	}
	if paid {
		log.Printf("referral code %s redeemed by user %d, creator %d paid %d XP", rc.Code, redeemerID, rc.CreatorID, domain.ReferralXP)
		if s.notifier != nil {
			s.notifier.Notify(rc.CreatorID, models.NotificationReferral, "Referral redeemed",
				fmt.Sprintf("Someone joined with your referral code (+%d XP)", domain.ReferralXP))
		}
	}
	return nil
}
