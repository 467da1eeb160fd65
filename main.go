package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"thesis-radar/ai"
	"thesis-radar/config"
	"thesis-radar/database"
	"thesis-radar/handlers"
	"thesis-radar/store"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if cfg.DatabaseURL != "" {
		logger.Info("database connected", zap.String("backend", "postgres"))
	} else {
		logger.Info("database connected", zap.String("backend", "sqlite"), zap.String("path", cfg.SQLitePath))
	}

	// Research endpoints stay off when no key is configured; CRUD still works.
	var aiClient *ai.Client
	if cfg.GeminiAPIKey != "" {
		aiClient, err = ai.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Fatal("failed to create Gemini client", zap.Error(err))
		}
		logger.Info("Gemini client ready", zap.String("model", cfg.GeminiModel))
	} else {
		logger.Warn("GEMINI_API_KEY not set, research endpoints disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	h := handlers.New(store.NewGormStore(db), aiClient, logger)
	h.Register(r)

	logger.Info("starting Thesis Radar server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
