package handler

import (
	"errors"
	"net/http"

	"converso/internal/domain"
	"converso/internal/middleware"
	"converso/internal/service"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	referralSvc *service.ReferralService
}

func NewReferralHandler(referralSvc *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralSvc: referralSvc}
}

// Generate returns the authenticated user's referral code, minting one on
// first call.
// POST /me/referral-code
func (h *ReferralHandler) Generate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	res, err := h.referralSvc.Generate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate referral code"})
		return
	}
	status := http.StatusCreated
	if res.AlreadyExists {
		status = http.StatusOK
	}
	c.JSON(status, res)
}

// Get returns the user's code without minting one.
// GET /me/referral-code
func (h *ReferralHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	rc, err := h.referralSvc.GetForCreator(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load referral code"})
		return
	}
	if rc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no referral code yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": rc.Code, "used": rc.UsedByID != nil, "created_at": rc.CreatedAt})
}

type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// Redeem consumes somebody else's code on behalf of the authenticated user.
// POST /referrals/redeem
func (h *ReferralHandler) Redeem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.referralSvc.Redeem(userID, req.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCode):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrAlreadyUsed), errors.Is(err, domain.ErrSelfReferral):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not redeem referral code"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
