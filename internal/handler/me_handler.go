package handler

import (
	"net/http"

	"converso/internal/middleware"
	"converso/internal/repository"
	"converso/internal/service"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo       *repository.UserRepository
	companionRepo  *repository.CompanionRepository
	bookmarkRepo   *repository.BookmarkRepository
	achievementSvc *service.AchievementService
	xpSvc          *service.XPService
	permissionSvc  *service.PermissionService
}

func NewMeHandler(userRepo *repository.UserRepository, companionRepo *repository.CompanionRepository, bookmarkRepo *repository.BookmarkRepository, achievementSvc *service.AchievementService, xpSvc *service.XPService, permissionSvc *service.PermissionService) *MeHandler {
	return &MeHandler{userRepo: userRepo, companionRepo: companionRepo, bookmarkRepo: bookmarkRepo, achievementSvc: achievementSvc, xpSvc: xpSvc, permissionSvc: permissionSvc}
}

// Profile returns the authenticated user.
// GET /me/profile
func (h *MeHandler) Profile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// Journey is the my-journey page payload: the user's companions, bookmarks,
// achievements, ledger, and what they are currently allowed to do.
// GET /me/journey
func (h *MeHandler) Journey(c *gin.Context) {
	userID := middleware.GetUserID(c)
	companions, err := h.companionRepo.ListByAuthor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load companions"})
		return
	}
	bookmarks, err := h.bookmarkRepo.ListByUser(userID, 50, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load bookmarks"})
		return
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
	canCreate, err := h.permissionSvc.CanCreateCompanion(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "permission check failed"})
		return
	}
	canConverse, err := h.permissionSvc.CanStartConversation(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "permission check failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"companions":   companions,
		"bookmarks":    bookmarks,
		"achievements": grants,
		"xp":           xp,
		"permissions": gin.H{
			"can_create_companion":   canCreate,
			"can_start_conversation": canConverse,
		},
	})
}
