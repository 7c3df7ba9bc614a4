package service

import (
	"testing"

	"converso/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCompute(t *testing.T) {
	companions := &fakeCompanionCounter{counts: map[uint]int64{1: 2}}
	sessions := &fakeSessionSource{
		counts: map[uint]int64{1: 4},
		sessions: map[uint][]models.SessionHistory{1: {
			{Companion: models.Companion{Subject: "science"}},
			{Companion: models.Companion{Subject: "maths"}},
			{Companion: models.Companion{Subject: "science"}},
			{Companion: models.Companion{Subject: "coding"}},
		}},
	}
	svc := NewStatsService(companions, sessions)

	st, err := svc.Compute(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.CompanionCount)
	assert.Equal(t, int64(4), st.TotalSessionCount)
	assert.Equal(t, int64(2), st.ScienceSessionCount)
}

func TestStatsScienceMatchIsExact(t *testing.T) {
	companions := &fakeCompanionCounter{counts: map[uint]int64{}}
	sessions := &fakeSessionSource{
		counts: map[uint]int64{1: 2},
		sessions: map[uint][]models.SessionHistory{1: {
			{Companion: models.Companion{Subject: "Science"}},
			{Companion: models.Companion{Subject: "science"}},
		}},
	}
	svc := NewStatsService(companions, sessions)

	st, err := svc.Compute(1)
	require.NoError(t, err)
	// Subjects are stored lower-case; anything else does not count
	assert.Equal(t, int64(1), st.ScienceSessionCount)
}

func TestStatsEmptyUser(t *testing.T) {
	svc := NewStatsService(
		&fakeCompanionCounter{counts: map[uint]int64{}},
		&fakeSessionSource{counts: map[uint]int64{}, sessions: map[uint][]models.SessionHistory{}},
	)

	st, err := svc.Compute(99)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}
