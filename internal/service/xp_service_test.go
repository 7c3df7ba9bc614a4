package service

import (
	"testing"

	"converso/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPGetOrCreateInitializesLedger(t *testing.T) {
	store := newFakeXPStore()
	svc := NewXPService(store)

	rec, err := svc.GetOrCreate(7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), rec.UserID)
	assert.Equal(t, 0, rec.XPPoints)
	assert.Equal(t, 1, rec.Level)

	// Second read returns the same row, no duplicate create
	again, err := svc.GetOrCreate(7)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, again.ID)
}

func TestXPAwardAccumulates(t *testing.T) {
	store := newFakeXPStore()
	svc := NewXPService(store)

	rec, err := svc.Award(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.XPPoints)

	rec, err = svc.Award(1, 25)
	require.NoError(t, err)
	assert.Equal(t, 35, rec.XPPoints)
}

func TestXPAwardClampsAtCeiling(t *testing.T) {
	store := newFakeXPStore()
	svc := NewXPService(store)

	_, err := svc.Award(1, 95)
	require.NoError(t, err)

	rec, err := svc.Award(1, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxXP, rec.XPPoints)

	// Further awards stay pinned at the ceiling
	rec, err = svc.Award(1, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxXP, rec.XPPoints)
}

func TestXPAwardRejectsNonPositive(t *testing.T) {
	store := newFakeXPStore()
	svc := NewXPService(store)

	_, err := svc.Award(1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Award(1, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	// Nothing was written
	assert.Equal(t, 0, store.points(1))
}
