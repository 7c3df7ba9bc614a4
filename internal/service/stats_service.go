package service

import (
	"converso/internal/domain"
	"converso/internal/models"
)

// Stats is the ephemeral snapshot achievement predicates consume. It is
// recomputed from the store on every evaluation pass and never cached.
type Stats struct {
	CompanionCount      int64 `json:"companion_count"`
	TotalSessionCount   int64 `json:"total_session_count"`
	ScienceSessionCount int64 `json:"science_session_count"`
}

type CompanionCounter interface {
	CountByAuthor(authorID uint) (int64, error)
}

type SessionSource interface {
	CountByUser(userID uint) (int64, error)
	ListByUserWithCompanion(userID uint) ([]models.SessionHistory, error)
}

type StatsService struct {
	companions CompanionCounter
	sessions   SessionSource
}

func NewStatsService(companions CompanionCounter, sessions SessionSource) *StatsService {
	return &StatsService{companions: companions, sessions: sessions}
}

// Compute derives the user's counters with three independent store reads.
// The science counter fetches the joined rows and filters here, on an exact
// case-sensitive subject match.
func (s *StatsService) Compute(userID uint) (Stats, error) {
	var st Stats
	companionCount, err := s.companions.CountByAuthor(userID)
	if err != nil {
		return st, err
	}
	sessionCount, err := s.sessions.CountByUser(userID)
	if err != nil {
		return st, err
	}
	sessions, err := s.sessions.ListByUserWithCompanion(userID)
	if err != nil {
		return st, err
	}
	var science int64
	for _, sess := range sessions {
		if sess.Companion.Subject == domain.SubjectScience {
			science++
		}
	}
	st.CompanionCount = companionCount
	st.TotalSessionCount = sessionCount
	st.ScienceSessionCount = science
	return st, nil
}
