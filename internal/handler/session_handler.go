package handler

import (
	"log"
	"net/http"
	"strconv"

	"converso/internal/middleware"
	"converso/internal/models"
	"converso/internal/repository"
	"converso/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionRepo    *repository.SessionRepository
	companionRepo  *repository.CompanionRepository
	permissionSvc  *service.PermissionService
	achievementSvc *service.AchievementService
}

func NewSessionHandler(sessionRepo *repository.SessionRepository, companionRepo *repository.CompanionRepository, permissionSvc *service.PermissionService, achievementSvc *service.AchievementService) *SessionHandler {
	return &SessionHandler{sessionRepo: sessionRepo, companionRepo: companionRepo, permissionSvc: permissionSvc, achievementSvc: achievementSvc}
}

type RecordSessionRequest struct {
	CompanionID uint `json:"companion_id" binding:"required"`
	DurationSec int  `json:"duration_sec" binding:"min=0"`
}

// Record stores a completed lesson session and re-evaluates achievements.
// POST /sessions
func (h *SessionHandler) Record(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed, err := h.permissionSvc.CanStartConversation(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "permission check failed"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "free session limit reached - upgrade your plan or earn more XP"})
		return
	}
	if _, err := h.companionRepo.GetByID(req.CompanionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "companion not found"})
		return
	}
	sess := &models.SessionHistory{UserID: userID, CompanionID: req.CompanionID, DurationSec: req.DurationSec}
	if err := h.sessionRepo.Create(sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record session"})
		return
	}
	if _, err := h.achievementSvc.EvaluateAndAward(userID); err != nil {
		log.Printf("achievement evaluation after session for user %d: %v", userID, err)
	}
	c.JSON(http.StatusCreated, sess)
}

// Recent lists the latest completed sessions across all users (home feed).
// GET /sessions/recent?limit=
func (h *SessionHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	list, err := h.sessionRepo.ListRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": list})
}

// Mine lists the authenticated user's session history.
// GET /me/sessions?limit=&offset=
func (h *SessionHandler) Mine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.sessionRepo.ListByUser(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": list})
}
