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

type CompanionHandler struct {
	companionRepo  *repository.CompanionRepository
	permissionSvc  *service.PermissionService
	achievementSvc *service.AchievementService
}

func NewCompanionHandler(companionRepo *repository.CompanionRepository, permissionSvc *service.PermissionService, achievementSvc *service.AchievementService) *CompanionHandler {
	return &CompanionHandler{companionRepo: companionRepo, permissionSvc: permissionSvc, achievementSvc: achievementSvc}
}

type CreateCompanionRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Subject  string `json:"subject" binding:"required,max=50"`
	Topic    string `json:"topic" binding:"required,max=255"`
	Voice    string `json:"voice" binding:"required,oneof=male female"`
	Style    string `json:"style" binding:"required,oneof=casual formal"`
	Duration int    `json:"duration" binding:"required,min=1,max=120"`
	ImageURL string `json:"image_url"`
}

// Create builds a new companion for the authenticated user. The permission
// gate runs first; denial means the user's plan limit is reached (or zero).
// POST /companions
func (h *CompanionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateCompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed, err := h.permissionSvc.CanCreateCompanion(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "permission check failed"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "companion limit reached - upgrade your plan to create more"})
		return
	}
	cp := &models.Companion{
		AuthorID: userID,
		Name:     req.Name,
		Subject:  req.Subject,
		Topic:    req.Topic,
		Voice:    req.Voice,
		Style:    req.Style,
		Duration: req.Duration,
		ImageURL: req.ImageURL,
	}
	if err := h.companionRepo.Create(cp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create companion"})
		return
	}
	// Achievement evaluation rides along best-effort; a failure here must not
	// fail the creation itself.
	if _, err := h.achievementSvc.EvaluateAndAward(userID); err != nil {
		log.Printf("achievement evaluation after companion create for user %d: %v", userID, err)
	}
	c.JSON(http.StatusCreated, cp)
}

// List returns companions filtered by subject and/or topic with pagination.
// GET /companions?subject=&topic=&limit=&page=
func (h *CompanionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	list, err := h.companionRepo.List(c.Query("subject"), c.Query("topic"), limit, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list companions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companions": list, "page": page, "limit": limit})
}

// Get returns one companion by id.
// GET /companions/:id
func (h *CompanionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid companion id"})
		return
	}
	cp, err := h.companionRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "companion not found"})
		return
	}
	c.JSON(http.StatusOK, cp)
}

// Mine lists the authenticated user's own companions.
// GET /me/companions
func (h *CompanionHandler) Mine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.companionRepo.ListByAuthor(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list companions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companions": list})
}
