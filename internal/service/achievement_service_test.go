package service

import (
	"testing"

	"converso/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAchievementFixture(st Stats) (*AchievementService, *fakeGrantStore, *fakeXPStore, *fakeNotifier) {
	grants := newFakeGrantStore()
	ledger := newFakeXPStore()
	notifier := &fakeNotifier{}
	svc := NewAchievementService(grants, &fakeStats{st: st}, NewXPService(ledger), notifier)
	return svc, grants, ledger, notifier
}

func TestEvaluateGrantsFirstCompanion(t *testing.T) {
	svc, _, ledger, notifier := newAchievementFixture(Stats{CompanionCount: 1})

	results, err := svc.EvaluateAndAward(42)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.AchievementCompanionCreated, results[0].Type)
	assert.True(t, results[0].Granted)
	assert.Equal(t, domain.XPCompanionCreated, results[0].XP)
	assert.Equal(t, domain.XPCompanionCreated, ledger.points(42))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(42), notifier.sent[0].userID)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	svc, _, ledger, notifier := newAchievementFixture(Stats{CompanionCount: 1, TotalSessionCount: 5})

	first, err := svc.EvaluateAndAward(1)
	require.NoError(t, err)
	require.Len(t, first, 2)
	want := domain.XPCompanionCreated + domain.XPLessons5
	assert.Equal(t, want, ledger.points(1))

	second, err := svc.EvaluateAndAward(1)
	require.NoError(t, err)
	require.Len(t, second, 2)
	for _, r := range second {
		assert.False(t, r.Granted)
		assert.True(t, r.AlreadyCompleted)
	}
	// Balance and notifications unchanged by the repeat pass
	assert.Equal(t, want, ledger.points(1))
	assert.Len(t, notifier.sent, 2)
}

func TestEvaluateGrantsEverythingInOnePass(t *testing.T) {
	svc, grants, ledger, _ := newAchievementFixture(Stats{
		CompanionCount:      2,
		TotalSessionCount:   12,
		ScienceSessionCount: 6,
	})

	results, err := svc.EvaluateAndAward(9)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Granted)
	}
	// 10 + 25 + 55 + 30 = 120, clamped to the ceiling
	assert.Equal(t, domain.MaxXP, ledger.points(9))

	listed, err := grants.ListByUser(9)
	require.NoError(t, err)
	assert.Len(t, listed, 4)
}

func TestEvaluateNothingQualifies(t *testing.T) {
	svc, _, ledger, notifier := newAchievementFixture(Stats{TotalSessionCount: 4, ScienceSessionCount: 4})

	results, err := svc.EvaluateAndAward(3)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, ledger.points(3))
	assert.Empty(t, notifier.sent)
}

func TestEvaluateIndependentThresholds(t *testing.T) {
	// lessons_10 qualifies without lessons_5 having been granted earlier;
	// both land in the same pass.
	svc, _, ledger, _ := newAchievementFixture(Stats{TotalSessionCount: 10})

	results, err := svc.EvaluateAndAward(5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.AchievementLessons5, results[0].Type)
	assert.Equal(t, domain.AchievementLessons10, results[1].Type)
	assert.Equal(t, domain.XPLessons5+domain.XPLessons10, ledger.points(5))
}

func TestEvaluateAbortsOnStoreError(t *testing.T) {
	grants := newFakeGrantStore()
	grants.failOn = domain.AchievementLessons5
	ledger := newFakeXPStore()
	svc := NewAchievementService(grants, &fakeStats{st: Stats{CompanionCount: 1, TotalSessionCount: 10}}, NewXPService(ledger), nil)

	results, err := svc.EvaluateAndAward(2)
	require.Error(t, err)
	// The grant before the failure stands and is reported
	require.Len(t, results, 1)
	assert.Equal(t, domain.AchievementCompanionCreated, results[0].Type)
	assert.Equal(t, domain.XPCompanionCreated, ledger.points(2))

	// Retry after recovery picks up where the pass stopped, no double pay
	grants.failOn = ""
	results, err = svc.EvaluateAndAward(2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].AlreadyCompleted)
	assert.True(t, results[1].Granted)
	assert.True(t, results[2].Granted)
	assert.Equal(t, domain.XPCompanionCreated+domain.XPLessons5+domain.XPLessons10, ledger.points(2))
}
