package handler

import (
	"log"
	"net/http"

	"converso/internal/middleware"
	"converso/internal/service"

	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	achievementSvc *service.AchievementService
	xpSvc          *service.XPService
	statsSvc       *service.StatsService
	referralSvc    *service.ReferralService
}

func NewAchievementHandler(achievementSvc *service.AchievementService, xpSvc *service.XPService, statsSvc *service.StatsService, referralSvc *service.ReferralService) *AchievementHandler {
	return &AchievementHandler{achievementSvc: achievementSvc, xpSvc: xpSvc, statsSvc: statsSvc, referralSvc: referralSvc}
}

// Overview is the achievements page payload. Viewing it re-runs evaluation
// (safe: awarding is idempotent per type), then reports the granted list, the
// full catalog, the ledger, current stats, and the user's referral code if any.
// GET /me/achievements
func (h *AchievementHandler) Overview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if _, err := h.achievementSvc.EvaluateAndAward(userID); err != nil {
		// Best-effort on page view; the lists below still render current state.
		log.Printf("achievement evaluation on overview for user %d: %v", userID, err)
	}
	grants, err := h.achievementSvc.ListGrants(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load achievements"})
		return
	}
	xp, err := h.xpSvc.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load xp"})
		return
	}
	stats, err := h.statsSvc.Compute(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stats"})
		return
	}
	catalog := make([]gin.H, 0, len(service.Catalog))
	for _, entry := range service.Catalog {
		catalog = append(catalog, gin.H{"type": entry.Type, "title": entry.Title, "xp": entry.XP})
	}
	rc, err := h.referralSvc.GetForCreator(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load referral code"})
		return
	}
	resp := gin.H{
		"achievements": grants,
		"catalog":      catalog,
		"xp":           xp,
		"stats":        stats,
	}
	if rc != nil {
		resp["referral_code"] = gin.H{"code": rc.Code, "used": rc.UsedByID != nil, "created_at": rc.CreatedAt}
	}
	c.JSON(http.StatusOK, resp)
}

// XP returns just the ledger row.
// GET /me/xp
func (h *AchievementHandler) XP(c *gin.Context) {
	userID := middleware.GetUserID(c)
	xp, err := h.xpSvc.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load xp"})
		return
	}
	c.JSON(http.StatusOK, xp)
}
