package router

import (
	"time"

	"converso/config"
	"converso/internal/handler"
	"converso/internal/middleware"
	"converso/internal/repository"
	"converso/internal/service"
	"converso/pkg/cloudinary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	companionRepo := repository.NewCompanionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	xpRepo := repository.NewXPRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo)
	xpSvc := service.NewXPService(xpRepo)
	statsSvc := service.NewStatsService(companionRepo, sessionRepo)
	achievementSvc := service.NewAchievementService(achievementRepo, statsSvc, xpSvc, notifSvc)
	entitlements := service.NewPlanEntitlements(userRepo)
	permissionSvc := service.NewPermissionService(entitlements, xpSvc, companionRepo, sessionRepo)
	referralSvc := service.NewReferralService(referralRepo, userRepo, xpSvc, notifSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, referralSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc, referralSvc)
	companionHandler := handler.NewCompanionHandler(companionRepo, permissionSvc, achievementSvc)
	sessionHandler := handler.NewSessionHandler(sessionRepo, companionRepo, permissionSvc, achievementSvc)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkRepo, companionRepo)
	achievementHandler := handler.NewAchievementHandler(achievementSvc, xpSvc, statsSvc, referralSvc)
	referralHandler := handler.NewReferralHandler(referralSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	meHandler := handler.NewMeHandler(userRepo, companionRepo, bookmarkRepo, achievementSvc, xpSvc, permissionSvc)
	uploadHandler := handler.NewUploadHandler(cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		api.GET("/companions", companionHandler.List)
		api.GET("/companions/:id", companionHandler.Get)
		api.POST("/companions", authMw, companionHandler.Create)
		api.POST("/companions/:id/bookmark", authMw, bookmarkHandler.Add)
		api.DELETE("/companions/:id/bookmark", authMw, bookmarkHandler.Remove)

		api.GET("/sessions/recent", sessionHandler.Recent)
		api.POST("/sessions", authMw, sessionHandler.Record)

		api.POST("/referrals/redeem", authMw, referralHandler.Redeem)

		api.POST("/uploads/artwork", authMw, uploadHandler.UploadArtwork)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.Profile)
			me.GET("/journey", meHandler.Journey)
			me.GET("/companions", companionHandler.Mine)
			me.GET("/sessions", sessionHandler.Mine)
			me.GET("/bookmarks", bookmarkHandler.List)
			me.GET("/achievements", achievementHandler.Overview)
			me.GET("/xp", achievementHandler.XP)
			me.GET("/referral-code", referralHandler.Get)
			me.POST("/referral-code", referralHandler.Generate)
			me.GET("/notifications", notificationHandler.List)
			me.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		}

		// Live lesson channel (auth via token query param, like any ws client)
		api.GET("/ws/lesson", handler.UpgradeLessonWS(&cfg.JWT, sessionRepo, companionRepo, permissionSvc, achievementSvc))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	return r
}
