package service

import (
	"fmt"

	"converso/internal/domain"
	"converso/internal/models"
)

// CatalogEntry binds an achievement type to its fixed reward and its
// qualification predicate over a stats snapshot.
type CatalogEntry struct {
	Type      domain.AchievementType
	Title     string
	XP        int
	Qualifies func(Stats) bool
}

// Catalog is the closed, ordered achievement set. Entries are independent:
// lessons_10 does not require lessons_5 to have been granted first, and both
// may be granted in the same pass.
var Catalog = []CatalogEntry{
	{domain.AchievementCompanionCreated, "First Companion", domain.XPCompanionCreated, func(st Stats) bool { return st.CompanionCount >= 1 }},
	{domain.AchievementLessons5, "5 Lessons Done", domain.XPLessons5, func(st Stats) bool { return st.TotalSessionCount >= 5 }},
	{domain.AchievementLessons10, "10 Lessons Done", domain.XPLessons10, func(st Stats) bool { return st.TotalSessionCount >= 10 }},
	{domain.AchievementScience5, "Science Explorer", domain.XPScience5, func(st Stats) bool { return st.ScienceSessionCount >= 5 }},
}

type GrantStore interface {
	InsertIfAbsent(grant *models.Achievement) (bool, error)
	ListByUser(userID uint) ([]models.Achievement, error)
}

type StatsProvider interface {
	Compute(userID uint) (Stats, error)
}

type LedgerAwarder interface {
	Award(userID uint, amount int) (*models.UserXP, error)
}

// Notifier delivers best-effort user notices. Implementations must not fail
// the caller.
type Notifier interface {
	Notify(userID uint, kind, title, body string)
}

// AwardResult is the per-type outcome of one evaluation pass. Callers use it
// for logging only; display state is re-read from the store afterward.
type AwardResult struct {
	Type             domain.AchievementType `json:"type"`
	XP               int                    `json:"xp"`
	Granted          bool                   `json:"granted"`
	AlreadyCompleted bool                   `json:"already_completed"`
}

type AchievementService struct {
	grants   GrantStore
	stats    StatsProvider
	ledger   LedgerAwarder
	notifier Notifier
}

func NewAchievementService(grants GrantStore, stats StatsProvider, ledger LedgerAwarder, notifier Notifier) *AchievementService {
	return &AchievementService{grants: grants, stats: stats, ledger: ledger, notifier: notifier}
}

// EvaluateAndAward recomputes the user's stats and grants every qualifying
// achievement that has not been granted before. Each type pays XP exactly once
// per user for the lifetime of the account; repeat calls with unchanged stats
// are no-ops. A store failure aborts the remaining entries — grants applied so
// far stand, and retrying the whole pass is safe.
func (s *AchievementService) EvaluateAndAward(userID uint) ([]AwardResult, error) {
	st, err := s.stats.Compute(userID)
	if err != nil {
		return nil, err
	}
	var results []AwardResult
	for _, entry := range Catalog {
		if !entry.Qualifies(st) {
			continue
		}
		inserted, err := s.grants.InsertIfAbsent(&models.Achievement{
			UserID:          userID,
			AchievementType: entry.Type,
			XPAwarded:       entry.XP,
		})
		if err != nil {
			return results, err
		}
		if !inserted {
			results = append(results, AwardResult{Type: entry.Type, XP: entry.XP, AlreadyCompleted: true})
			continue
		}
		if _, err := s.ledger.Award(userID, entry.XP); err != nil {
			return results, err
		}
		if s.notifier != nil {
			s.notifier.Notify(userID, models.NotificationAchievement, entry.Title,
				fmt.Sprintf("Achievement unlocked: %s (+%d XP)", entry.Title, entry.XP))
		}
		results = append(results, AwardResult{Type: entry.Type, XP: entry.XP, Granted: true})
	}
	return results, nil
}

// ListGrants returns the user's achievements, most recent first.
func (s *AchievementService) ListGrants(userID uint) ([]models.Achievement, error) {
	return s.grants.ListByUser(userID)
}
