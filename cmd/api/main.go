package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/config"
	"casino-gateway/internal/handlers"
	"casino-gateway/internal/ledger"
	"casino-gateway/internal/middleware"
	"casino-gateway/internal/services"
	"casino-gateway/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.Env)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	ledgerClient := ledger.NewHTTPClient(cfg.LedgerBaseURL, cfg.LedgerToken, logg)
	store := cache.NewStore(redisClient, cfg.CacheTTL)
	sessions := services.NewSessionStore(redisClient, cfg.RoundTTL)

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	authService := services.NewAuthService(ledgerClient, store, sessions, jwtService, logg, cfg.IdentitySecret, cfg.SessionTTL)
	roundService := services.NewRoundService(ledgerClient, store, sessions, nil, logg, cfg.MinBet, cfg.BlackjackPushIsWin)
	walletService := services.NewWalletService(ledgerClient, store, logg)
	contentService := services.NewContentService(ledgerClient, store)
	adminService := services.NewAdminService(ledgerClient, store, sessions, logg, cfg.AdminUnlockPassword, cfg.SessionTTL)

	wsHandler := handlers.NewWebSocketHandler(roundService, logg)
	roundService.SetBroadcaster(wsHandler)

	userHandler := handlers.NewUserHandler(authService, roundService, walletService)
	walletHandler := handlers.NewWalletHandler(walletService)
	gameHandler := handlers.NewGameHandler(roundService, walletService)
	contentHandler := handlers.NewContentHandler(contentService)
	adminHandler := handlers.NewAdminHandler(adminService)

	scheduler := cron.New()
	scheduler.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if n, err := sessions.CleanupStaleRounds(ctx, 10*time.Minute); err != nil {
			logg.Warn("stale round cleanup failed", "error", err)
		} else if n > 0 {
			logg.Info("cleaned up stale rounds", "count", n)
		}
	})
	scheduler.AddFunc("@every 15m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.InvalidateSettings(ctx); err != nil {
			logg.Warn("settings refresh failed", "error", err)
		}
	})
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(logg))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/auth/session", userHandler.CreateSession)

	// Public presentation surface, no session required.
	router.GET("/content/catalog", contentHandler.GetCatalog)
	router.GET("/content/catalog/:gameID", contentHandler.GetCatalogEntry)
	router.GET("/content/symbols/:gameType", contentHandler.GetSymbolSet)
	router.GET("/content/settings", contentHandler.GetSettings)
	router.GET("/content/branding", contentHandler.GetBranding)
	router.GET("/content/theme", contentHandler.GetTheme)
	router.GET("/content/banner", contentHandler.GetBanner)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(authService))
	protected.Use(middleware.RateLimitMiddleware(sessions))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/logout", userHandler.Logout)
		protected.GET("/leaderboard", userHandler.GetLeaderboard)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		wallet := protected.Group("/wallet")
		{
			wallet.POST("/deposit", walletHandler.Deposit)
			wallet.POST("/withdraw", walletHandler.Withdraw)
			wallet.GET("/transactions", walletHandler.GetTransactions)
			wallet.GET("/eligibility", walletHandler.GetEligibility)
		}

		games := protected.Group("/games")
		{
			games.POST("/play", gameHandler.Play)
			games.GET("/history", gameHandler.GetGameHistory)

			blackjack := games.Group("/blackjack")
			{
				blackjack.POST("/deal", gameHandler.BlackjackDeal)
				blackjack.POST("/hit", gameHandler.BlackjackHit)
				blackjack.POST("/stand", gameHandler.BlackjackStand)
			}

			mines := games.Group("/mines")
			{
				mines.POST("/start", gameHandler.MinesStart)
				mines.POST("/reveal", gameHandler.MinesReveal)
				mines.POST("/cashout", gameHandler.MinesCashout)
			}
		}

		protected.POST("/admin/unlock", adminHandler.Unlock)

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminGateMiddleware(adminService))
		{
			admin.POST("/lock", adminHandler.Lock)
			admin.PUT("/settings", adminHandler.UpdateSettings)

			admin.POST("/catalog", adminHandler.AddCatalogEntry)
			admin.PUT("/catalog/:gameID", adminHandler.UpdateCatalogEntry)
			admin.DELETE("/catalog/:gameID", adminHandler.RemoveCatalogEntry)

			admin.PUT("/symbols/:gameType", adminHandler.UpdateSymbolSet)
			admin.PUT("/branding", adminHandler.UpdateBranding)
			admin.PUT("/theme", adminHandler.SetTheme)
			admin.PUT("/banner", adminHandler.SetBanner)

			admin.POST("/assets", adminHandler.UploadAsset)
			admin.PUT("/assets/:assetID", adminHandler.UpdateAsset)
			admin.DELETE("/assets/:assetID", adminHandler.DeleteAsset)
		}
	}

	logg.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
