package service

import (
	"strings"
	"testing"

	"converso/internal/domain"
	"converso/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferralFixture() (*ReferralService, *fakeReferralStore, *fakeXPStore, *fakeNotifier) {
	ledger := newFakeXPStore()
	store := newFakeReferralStore(ledger)
	users := &fakeUserStore{users: map[uint]*models.User{
		1: {ID: 1, PublicID: "a1b2c3d4-e5f6-7890-abcd-ef0123456789"},
		2: {ID: 2, PublicID: "ffeeddcc-bbaa-9988-7766-554433221100"},
		3: {ID: 3, PublicID: "00112233-4455-6677-8899-aabbccddeeff"},
	}}
	notifier := &fakeNotifier{}
	svc := NewReferralService(store, users, NewXPService(ledger), notifier)
	return svc, store, ledger, notifier
}

func TestGenerateMintsPrefixedCode(t *testing.T) {
	svc, _, _, _ := newReferralFixture()

	res, err := svc.Generate(1)
	require.NoError(t, err)
	assert.False(t, res.AlreadyExists)

	parts := strings.Split(res.Code, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "REF", parts[0])
	assert.Equal(t, "A1B2C3D4", parts[1])
	assert.Len(t, parts[2], 6)
	assert.Equal(t, strings.ToUpper(res.Code), res.Code)
}

func TestGenerateIsIdempotent(t *testing.T) {
	svc, _, _, _ := newReferralFixture()

	first, err := svc.Generate(1)
	require.NoError(t, err)

	second, err := svc.Generate(1)
	require.NoError(t, err)
	assert.True(t, second.AlreadyExists)
	assert.Equal(t, first.Code, second.Code)
}

func TestGetForCreatorMissingIsNil(t *testing.T) {
	svc, _, _, _ := newReferralFixture()

	rc, err := svc.GetForCreator(1)
	require.NoError(t, err)
	assert.Nil(t, rc)
}

func TestRedeemPaysCreatorOnce(t *testing.T) {
	svc, store, ledger, notifier := newReferralFixture()

	res, err := svc.Generate(1)
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(2, res.Code))
	assert.Equal(t, domain.ReferralXP, ledger.points(1))
	assert.Equal(t, 0, ledger.points(2))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(1), notifier.sent[0].userID)

	rc := store.byCode[res.Code]
	require.NotNil(t, rc.UsedByID)
	assert.Equal(t, uint(2), *rc.UsedByID)
	assert.True(t, rc.XPAwarded)

	// A second redemption, by anyone, is rejected and pays nothing
	err = svc.Redeem(3, res.Code)
	assert.ErrorIs(t, err, domain.ErrAlreadyUsed)
	assert.Equal(t, domain.ReferralXP, ledger.points(1))
	assert.Len(t, notifier.sent, 1)
}

func TestRedeemIsCaseInsensitive(t *testing.T) {
	svc, _, ledger, _ := newReferralFixture()

	res, err := svc.Generate(1)
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(2, "  "+strings.ToLower(res.Code)+" "))
	assert.Equal(t, domain.ReferralXP, ledger.points(1))
}

func TestRedeemUnknownCode(t *testing.T) {
	svc, _, ledger, _ := newReferralFixture()

	err := svc.Redeem(2, "REF-NOSUCH-ABC123")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	assert.Equal(t, 0, ledger.points(1))
}

func TestRedeemOwnCodeRejected(t *testing.T) {
	svc, store, ledger, _ := newReferralFixture()

	res, err := svc.Generate(1)
	require.NoError(t, err)

	err = svc.Redeem(1, res.Code)
	assert.ErrorIs(t, err, domain.ErrSelfReferral)
	assert.Equal(t, 0, ledger.points(1))
	// The code stays redeemable
	assert.Nil(t, store.byCode[res.Code].UsedByID)
}

func TestRedeemPayoutClampsAtCeiling(t *testing.T) {
	svc, _, ledger, _ := newReferralFixture()

	_, err := NewXPService(ledger).Award(1, 95)
	require.NoError(t, err)

	res, err := svc.Generate(1)
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(2, res.Code))
	assert.Equal(t, domain.MaxXP, ledger.points(1))
}
