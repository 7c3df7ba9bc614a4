package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"converso/config"
	"converso/internal/auth"
	"converso/internal/models"
	"converso/internal/repository"
	"converso/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	lessonWriteWait = 10 * time.Second
	lessonPongWait  = 60 * time.Second
)

var lessonUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// lessonEvent is what the voice-SDK client sends over the socket. Transcript
// content is opaque to the server; only lifecycle events change state.
type lessonEvent struct {
	Type        string `json:"type"` // call.started | transcript | call.ended
	Text        string `json:"text,omitempty"`
	DurationSec int    `json:"duration_sec,omitempty"`
}

// UpgradeLessonWS upgrades to a WebSocket carrying one live lesson session;
// query: token, companion_id. The session-limit gate runs before the upgrade,
// and call.ended records the session and re-evaluates achievements.
func UpgradeLessonWS(cfg *config.JWTConfig, sessionRepo *repository.SessionRepository, companionRepo *repository.CompanionRepository, permissionSvc *service.PermissionService, achievementSvc *service.AchievementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		companionIDStr := c.Query("companion_id")
		if token == "" || companionIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token and companion_id required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		companionID64, err := strconv.ParseUint(companionIDStr, 10, 64)
		if err != nil || companionID64 == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid companion_id"})
			return
		}
		companionID := uint(companionID64)
		if _, err := companionRepo.GetByID(companionID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "companion not found"})
			return
		}
		allowed, err := permissionSvc.CanStartConversation(claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "permission check failed"})
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "free session limit reached - upgrade your plan or earn more XP"})
			return
		}
		conn, err := lessonUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(lessonPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(lessonPongWait))
			return nil
		})

		recorded := false
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			conn.SetReadDeadline(time.Now().Add(lessonPongWait))
			var ev lessonEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				continue
			}
			switch ev.Type {
			case "call.started", "transcript":
				// Nothing to persist; the session only counts once it ends.
			case "call.ended":
				if recorded {
					continue
				}
				sess := &models.SessionHistory{UserID: claims.UserID, CompanionID: companionID, DurationSec: ev.DurationSec}
				if err := sessionRepo.Create(sess); err != nil {
					log.Printf("lesson ws: record session for user %d: %v", claims.UserID, err)
					continue
				}
				recorded = true
				results, err := achievementSvc.EvaluateAndAward(claims.UserID)
				if err != nil {
					log.Printf("lesson ws: achievement evaluation for user %d: %v", claims.UserID, err)
				}
				payload, _ := json.Marshal(gin.H{"type": "session.recorded", "session_id": sess.ID, "awards": results})
				conn.SetWriteDeadline(time.Now().Add(lessonWriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}
	}
}
