package main

import (
	"log"

	"github.com/tikscope/tikscope/internal/config"
	"github.com/tikscope/tikscope/internal/logger"
	"github.com/tikscope/tikscope/internal/metrics"
	"github.com/tikscope/tikscope/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Info("tikscope is starting", map[string]interface{}{
		"log_level":    cfg.LogLevel,
		"free_limit":   cfg.FreeLimit,
		"vip_users":    len(cfg.VIPUsers),
		"has_postgres": cfg.HasPostgresConfig(),
		"has_redis":    cfg.HasRedisConfig(),
	})

	if cfg.HasMetricsConfig() {
		metrics.StartServer(cfg.MetricsPort)
	}

	bot, err := telegram.NewBot(cfg)
	if err != nil {
		logger.Error("Failed to create Telegram bot", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Failed to create Telegram bot: %v", err)
	}

	logger.InfoMsg("🔎 Ready to analyze TikTok profiles!")

	defer bot.Stop()
	if err := bot.Start(); err != nil {
		logger.Error("Bot error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
