package handler

import (
	"net/http"
	"strconv"

	"converso/internal/middleware"
	"converso/internal/repository"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	bookmarkRepo  *repository.BookmarkRepository
	companionRepo *repository.CompanionRepository
}

func NewBookmarkHandler(bookmarkRepo *repository.BookmarkRepository, companionRepo *repository.CompanionRepository) *BookmarkHandler {
	return &BookmarkHandler{bookmarkRepo: bookmarkRepo, companionRepo: companionRepo}
}

func companionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid companion id"})
		return 0, false
	}
	return uint(id), true
}

// Add bookmarks a companion for the authenticated user.
// POST /companions/:id/bookmark
func (h *BookmarkHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)
	companionID, ok := companionIDParam(c)
	if !ok {
		return
	}
	if _, err := h.companionRepo.GetByID(companionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "companion not found"})
		return
	}
	if bookmarked, err := h.bookmarkRepo.IsBookmarked(userID, companionID); err == nil && bookmarked {
		c.JSON(http.StatusOK, gin.H{"bookmarked": true})
		return
	}
	if err := h.bookmarkRepo.Add(userID, companionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add bookmark"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookmarked": true})
}

// Remove deletes a bookmark.
// DELETE /companions/:id/bookmark
func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)
	companionID, ok := companionIDParam(c)
	if !ok {
		return
	}
	if err := h.bookmarkRepo.Remove(userID, companionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove bookmark"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": false})
}

// List returns the authenticated user's bookmarked companions.
// GET /me/bookmarks?limit=&offset=
func (h *BookmarkHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.bookmarkRepo.ListByUser(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list bookmarks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": list})
}
