package service

import (
	"testing"

	"converso/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type permFixture struct {
	svc        *PermissionService
	ent        *fakeEntitlements
	ledger     *fakeXPStore
	companions *fakeCompanionCounter
	sessions   *fakeSessionSource
}

func newPermFixture() *permFixture {
	ent := &fakeEntitlements{plans: map[uint]string{}, features: map[uint][]string{}}
	ledger := newFakeXPStore()
	companions := &fakeCompanionCounter{counts: map[uint]int64{}}
	sessions := &fakeSessionSource{counts: map[uint]int64{}}
	return &permFixture{
		svc:        NewPermissionService(ent, NewXPService(ledger), companions, sessions),
		ent:        ent,
		ledger:     ledger,
		companions: companions,
		sessions:   sessions,
	}
}

func (f *permFixture) setXP(t *testing.T, userID uint, xp int) {
	t.Helper()
	_, err := NewXPService(f.ledger).Award(userID, xp)
	require.NoError(t, err)
}

func TestCreateCompanionProPlanUnlimited(t *testing.T) {
	f := newPermFixture()
	f.ent.plans[1] = domain.PlanPro
	f.companions.counts[1] = 500

	ok, err := f.svc.CanCreateCompanion(1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateCompanionXPCeilingUnlocks(t *testing.T) {
	f := newPermFixture()

	// One point below the ceiling, no feature flags: limit is zero
	f.setXP(t, 1, 99)
	ok, err := f.svc.CanCreateCompanion(1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Crossing the ceiling flips the answer on the very next check
	f.setXP(t, 1, 1)
	ok, err = f.svc.CanCreateCompanion(1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateCompanionFeatureLimits(t *testing.T) {
	f := newPermFixture()
	f.ent.features[1] = []string{domain.Feature3CompanionLimit}
	f.ent.features[2] = []string{domain.Feature10CompanionLimit}
	// User 1 also carries the wider flag; the tighter one wins
	f.ent.features[1] = append(f.ent.features[1], domain.Feature10CompanionLimit)

	f.companions.counts[1] = 2
	ok, err := f.svc.CanCreateCompanion(1)
	require.NoError(t, err)
	assert.True(t, ok)

	f.companions.counts[1] = 3
	ok, err = f.svc.CanCreateCompanion(1)
	require.NoError(t, err)
	assert.False(t, ok)

	f.companions.counts[2] = 9
	ok, err = f.svc.CanCreateCompanion(2)
	require.NoError(t, err)
	assert.True(t, ok)

	f.companions.counts[2] = 10
	ok, err = f.svc.CanCreateCompanion(2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateCompanionNoEntitlements(t *testing.T) {
	f := newPermFixture()

	ok, err := f.svc.CanCreateCompanion(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStartConversationPlans(t *testing.T) {
	f := newPermFixture()
	f.ent.plans[1] = domain.PlanPro
	f.ent.plans[2] = domain.PlanCore
	f.sessions.counts[1] = 1000
	f.sessions.counts[2] = 1000

	for _, id := range []uint{1, 2} {
		ok, err := f.svc.CanStartConversation(id)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestStartConversationFreeLimit(t *testing.T) {
	f := newPermFixture()

	f.sessions.counts[1] = domain.FreeSessionLimit - 1
	ok, err := f.svc.CanStartConversation(1)
	require.NoError(t, err)
	assert.True(t, ok)

	f.sessions.counts[1] = domain.FreeSessionLimit
	ok, err = f.svc.CanStartConversation(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStartConversationXPCeilingLiftsLimit(t *testing.T) {
	f := newPermFixture()
	f.sessions.counts[1] = domain.FreeSessionLimit + 5

	f.setXP(t, 1, domain.MaxXP)
	ok, err := f.svc.CanStartConversation(1)
	require.NoError(t, err)
	assert.True(t, ok)
}
