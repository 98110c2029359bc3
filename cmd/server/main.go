package main

import (
	"context"
	"time"

	"moneyvault/internal/api"        // HTTP handlers
	"moneyvault/internal/config"     // Configuration
	"moneyvault/internal/kv"         // Key-value store drivers
	"moneyvault/internal/middleware" // Auth middleware
	"moneyvault/internal/vault"      // Record managers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store := openStore(cfg)

	// Wire the record managers over the shared store.
	session := vault.NewSession(store, time.Duration(cfg.AutoLockSeconds)*time.Second)
	notes, err := vault.NewNotifications(store)
	if err != nil {
		logrus.Fatalf("failed to load notifications: %v", err)
	}
	settings, err := vault.NewSettings(store)
	if err != nil {
		logrus.Fatalf("failed to load settings: %v", err)
	}
	session.SetAutoLock(settings.AutoLock)
	if err := session.Resume(); err != nil {
		logrus.Fatalf("failed to resume session: %v", err)
	}
	dir, err := vault.NewDirectory(store, session, notes)
	if err != nil {
		logrus.Fatalf("failed to load principals: %v", err)
	}
	transactions, err := vault.NewTransactions(store, notes)
	if err != nil {
		logrus.Fatalf("failed to load transactions: %v", err)
	}
	debts, err := vault.NewDebts(store, notes)
	if err != nil {
		logrus.Fatalf("failed to load debts: %v", err)
	}
	backup := vault.NewBackup(store, session, dir, transactions, debts, settings, notes)

	// Overdue detection runs once per activation, then on demand.
	if n, err := debts.SweepOverdue(time.Now()); err != nil {
		logrus.Errorf("overdue sweep failed: %v", err)
	} else if n > 0 {
		logrus.Infof("%d debt(s) marked overdue", n)
	}

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// First-run setup and login
	r.POST("/setup", api.SetupHandler(dir, cfg.JWTSecret))
	r.POST("/login", api.LoginHandler(dir, cfg.JWTSecret))

	// Authenticated routes
	auth := r.Group("")
	auth.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, dir, session))
	auth.POST("/logout", api.LogoutHandler(session))
	auth.POST("/pin", api.ChangePINHandler(dir))
	auth.GET("/settings", api.GetSettingsHandler(settings))
	auth.PUT("/settings", api.UpdateSettingsHandler(settings, session))

	txGroup := auth.Group("/transactions")
	txGroup.POST("", api.AddTransactionHandler(transactions))
	txGroup.GET("", api.ListTransactionsHandler(transactions))
	txGroup.DELETE("/:id", api.DeleteTransactionHandler(transactions))
	txGroup.GET("/stats", api.TransactionStatsHandler(transactions))
	txGroup.GET("/export", api.ExportTransactionsHandler(transactions))

	debtGroup := auth.Group("/debts")
	debtGroup.POST("", api.AddDebtHandler(debts))
	debtGroup.GET("", api.ListDebtsHandler(debts))
	debtGroup.PATCH("/:id", api.UpdateDebtHandler(debts))
	debtGroup.DELETE("/:id", api.DeleteDebtHandler(debts))
	debtGroup.GET("/stats", api.DebtStatsHandler(debts))
	debtGroup.POST("/sweep", api.SweepDebtsHandler(debts))

	noteGroup := auth.Group("/notifications")
	noteGroup.GET("", api.ListNotificationsHandler(notes))
	noteGroup.POST("/:id/read", api.MarkNotificationReadHandler(notes))
	noteGroup.GET("/unread", api.UnreadCountHandler(notes))

	// Admin routes (member management, backup/restore/reset)
	adminGroup := auth.Group("")
	adminGroup.Use(middleware.AdminOnlyMiddleware())
	adminGroup.GET("/members", api.ListMembersHandler(dir))
	adminGroup.POST("/members", api.AddMemberHandler(dir))
	adminGroup.PUT("/members/:id", api.UpdateMemberHandler(dir))
	adminGroup.DELETE("/members/:id", api.DeleteMemberHandler(dir))
	adminGroup.GET("/backup", api.ExportBackupHandler(backup))
	adminGroup.POST("/backup/restore", api.RestoreBackupHandler(backup))
	adminGroup.POST("/backup/reset", api.ResetHandler(backup))

	logrus.Infof("Server running on %s (store driver: %s)", cfg.AppPort, cfg.StoreDriver)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}

// openStore selects the persistence driver from configuration.
func openStore(cfg *config.Config) kv.Store {
	switch cfg.StoreDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := client.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		return kv.NewRedis(client)
	case "memory":
		logrus.Warn("using in-memory store: data is lost on exit")
		return kv.NewMemory()
	default:
		db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err)
		}
		return kv.NewGorm(db)
	}
}
