package service

import (
	"fmt"
	"time"

	"converso/internal/domain"
	"converso/internal/models"

	"gorm.io/gorm"
)

// In-memory store fakes backing the service tests. They mirror the gorm
// repositories' contracts, including gorm.ErrRecordNotFound on missing rows.

type fakeXPStore struct {
	recs   map[uint]*models.UserXP
	nextID uint
}

func newFakeXPStore() *fakeXPStore {
	return &fakeXPStore{recs: make(map[uint]*models.UserXP)}
}

func (f *fakeXPStore) GetByUserID(userID uint) (*models.UserXP, error) {
	rec, ok := f.recs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeXPStore) Create(rec *models.UserXP) error {
	if _, ok := f.recs[rec.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.nextID++
	rec.ID = f.nextID
	f.recs[rec.UserID] = rec
	return nil
}

func (f *fakeXPStore) AddPointsCapped(userID uint, amount int) (*models.UserXP, error) {
	rec, ok := f.recs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	rec.XPPoints += amount
	if rec.XPPoints > domain.MaxXP {
		rec.XPPoints = domain.MaxXP
	}
	return rec, nil
}

func (f *fakeXPStore) points(userID uint) int {
	if rec, ok := f.recs[userID]; ok {
		return rec.XPPoints
	}
	return 0
}

type grantKey struct {
	userID uint
	typ    domain.AchievementType
}

type fakeGrantStore struct {
	grants map[grantKey]*models.Achievement
	nextID uint
	failOn domain.AchievementType // InsertIfAbsent errors on this type when set
}

func newFakeGrantStore() *fakeGrantStore {
	return &fakeGrantStore{grants: make(map[grantKey]*models.Achievement)}
}

func (f *fakeGrantStore) InsertIfAbsent(grant *models.Achievement) (bool, error) {
	if f.failOn != "" && grant.AchievementType == f.failOn {
		return false, fmt.Errorf("store down")
	}
	key := grantKey{grant.UserID, grant.AchievementType}
	if _, ok := f.grants[key]; ok {
		return false, nil
	}
	f.nextID++
	grant.ID = f.nextID
	grant.CompletedAt = time.Now()
	f.grants[key] = grant
	return true, nil
}

func (f *fakeGrantStore) ListByUser(userID uint) ([]models.Achievement, error) {
	var out []models.Achievement
	for key, g := range f.grants {
		if key.userID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type fakeStats struct {
	st  Stats
	err error
}

func (f *fakeStats) Compute(userID uint) (Stats, error) { return f.st, f.err }

type notice struct {
	userID uint
	kind   string
	title  string
}

type fakeNotifier struct {
	sent []notice
}

func (f *fakeNotifier) Notify(userID uint, kind, title, body string) {
	f.sent = append(f.sent, notice{userID, kind, title})
}

type fakeUserStore struct {
	users map[uint]*models.User
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeReferralStore struct {
	byCreator map[uint]*models.ReferralCode
	byCode    map[string]*models.ReferralCode
	ledger    *fakeXPStore
	nextID    uint
}

func newFakeReferralStore(ledger *fakeXPStore) *fakeReferralStore {
	return &fakeReferralStore{
		byCreator: make(map[uint]*models.ReferralCode),
		byCode:    make(map[string]*models.ReferralCode),
		ledger:    ledger,
	}
}

func (f *fakeReferralStore) GetByCreator(creatorID uint) (*models.ReferralCode, error) {
	rc, ok := f.byCreator[creatorID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rc, nil
}

func (f *fakeReferralStore) GetByCode(code string) (*models.ReferralCode, error) {
	rc, ok := f.byCode[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rc, nil
}

func (f *fakeReferralStore) Create(rc *models.ReferralCode) error {
	if _, ok := f.byCode[rc.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	if _, ok := f.byCreator[rc.CreatorID]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.nextID++
	rc.ID = f.nextID
	f.byCode[rc.Code] = rc
	f.byCreator[rc.CreatorID] = rc
	return nil
}

// Redeem mimics the repository transaction: the conditional used transition,
// the one-shot payout flag, and the capped ledger credit, all or nothing.
func (f *fakeReferralStore) Redeem(rc *models.ReferralCode, redeemerID uint) (bool, error) {
	stored := f.byCode[rc.Code]
	if stored == nil {
		return false, gorm.ErrRecordNotFound
	}
	if stored.UsedByID != nil {
		return false, domain.ErrAlreadyUsed
	}
	now := time.Now()
	stored.UsedByID = &redeemerID
	stored.UsedAt = &now
	if stored.XPAwarded {
		return false, nil
	}
	stored.XPAwarded = true
	if _, err := f.ledger.AddPointsCapped(stored.CreatorID, domain.ReferralXP); err != nil {
		return false, err
	}
	return true, nil
}

type fakeCompanionCounter struct {
	counts map[uint]int64
}

func (f *fakeCompanionCounter) CountByAuthor(authorID uint) (int64, error) {
	return f.counts[authorID], nil
}

type fakeSessionSource struct {
	counts   map[uint]int64
	sessions map[uint][]models.SessionHistory
}

func (f *fakeSessionSource) CountByUser(userID uint) (int64, error) {
	return f.counts[userID], nil
}

func (f *fakeSessionSource) ListByUserWithCompanion(userID uint) ([]models.SessionHistory, error) {
	return f.sessions[userID], nil
}

type fakeEntitlements struct {
	plans    map[uint]string
	features map[uint][]string
}

func (f *fakeEntitlements) HasPlan(userID uint, plan string) (bool, error) {
	return f.plans[userID] == plan, nil
}

func (f *fakeEntitlements) HasFeature(userID uint, feature string) (bool, error) {
	for _, have := range f.features[userID] {
		if have == feature {
			return true, nil
		}
	}
	return false, nil
}
