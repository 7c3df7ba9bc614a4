package service

import (
	"converso/internal/domain"
	"converso/internal/models"
)

// Entitlements is what the identity/billing collaborator reports about a user.
type Entitlements interface {
	HasPlan(userID uint, plan string) (bool, error)
	HasFeature(userID uint, feature string) (bool, error)
}

type LedgerReader interface {
	GetOrCreate(userID uint) (*models.UserXP, error)
}

type SessionCounter interface {
	CountByUser(userID uint) (int64, error)
}

// PermissionService derives feature permissions from entitlements and the XP
// ledger. Both checks are read-only and evaluated fresh per call: crossing the
// XP ceiling is picked up on the very next check, nothing is memoized.
type PermissionService struct {
	ent        Entitlements
	ledger     LedgerReader
	companions CompanionCounter
	sessions   SessionCounter
}

func NewPermissionService(ent Entitlements, ledger LedgerReader, companions CompanionCounter, sessions SessionCounter) *PermissionService {
	return &PermissionService{ent: ent, ledger: ledger, companions: companions, sessions: sessions}
}

// xpUnlocked reports whether the user earned pro-equivalent access via XP.
func (s *PermissionService) xpUnlocked(userID uint) (bool, error) {
	rec, err := s.ledger.GetOrCreate(userID)
	if err != nil {
		return false, err
	}
	return rec.XPPoints >= domain.MaxXP, nil
}

// CanCreateCompanion checks the companion-creation limit, first match wins:
// pro plan or MaxXP means unlimited; otherwise the entitlement feature flag
// sets the limit (3, then 10); with no flag the limit is zero, so such users
// cannot create companions at all.
func (s *PermissionService) CanCreateCompanion(userID uint) (bool, error) {
	pro, err := s.ent.HasPlan(userID, domain.PlanPro)
	if err != nil {
		return false, err
	}
	if pro {
		return true, nil
	}
	unlocked, err := s.xpUnlocked(userID)
	if err != nil {
		return false, err
	}
	if unlocked {
		return true, nil
	}
	limit := 0
	if ok, err := s.ent.HasFeature(userID, domain.Feature3CompanionLimit); err != nil {
		return false, err
	} else if ok {
		limit = 3
	} else if ok, err := s.ent.HasFeature(userID, domain.Feature10CompanionLimit); err != nil {
		return false, err
	} else if ok {
		limit = 10
	}
	count, err := s.companions.CountByAuthor(userID)
	if err != nil {
		return false, err
	}
	return count < int64(limit), nil
}

// CanStartConversation checks the lesson-session limit: pro or core plan, or
// MaxXP, means unlimited; everyone else gets FreeSessionLimit total sessions.
func (s *PermissionService) CanStartConversation(userID uint) (bool, error) {
	for _, plan := range []string{domain.PlanPro, domain.PlanCore} {
		ok, err := s.ent.HasPlan(userID, plan)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	unlocked, err := s.xpUnlocked(userID)
	if err != nil {
		return false, err
	}
	if unlocked {
		return true, nil
	}
	count, err := s.sessions.CountByUser(userID)
	if err != nil {
		return false, err
	}
	return count < domain.FreeSessionLimit, nil
}
