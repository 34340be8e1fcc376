// Package telegram adapts the analysis pipeline onto the Telegram Bot API:
// long-poll update loop, command and callback routing, rate-limited delivery.
// The pipeline itself never sees a Telegram type.
package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/tikscope/tikscope/internal/analysis"
	"github.com/tikscope/tikscope/internal/config"
	"github.com/tikscope/tikscope/internal/logger"
	"github.com/tikscope/tikscope/internal/profile"
	"github.com/tikscope/tikscope/internal/quota"
	"github.com/tikscope/tikscope/internal/recommend"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	store    quota.Store
	pipeline *analysis.Pipeline

	// Rate limiting
	globalLimiter  *rate.Limiter
	userLimiters   map[int64]*rate.Limiter
	userLimitersMu sync.RWMutex
	cleanupStarted bool

	// Callback deduplication
	processedCallbacks map[string]time.Time
	callbacksMu        sync.RWMutex

	// Worker pool for concurrent processing
	workerPool *WorkerPool
}

func NewBot(cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	table, err := recommend.Load()
	if err != nil {
		// A missing or malformed table means the product cannot work.
		return nil, fmt.Errorf("failed to load recommendation table: %w", err)
	}

	store, err := quota.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open quota store: %w", err)
	}

	b := &Bot{
		api:    api,
		config: cfg,
		store:  store,

		globalLimiter: rate.NewLimiter(rate.Limit(30), 30), // Telegram's global ceiling
		userLimiters:  make(map[int64]*rate.Limiter),

		processedCallbacks: make(map[string]time.Time),
	}

	fetcher := profile.NewHTTPFetcher(time.Duration(cfg.FetchTimeout) * time.Second)
	b.pipeline = analysis.New(store, fetcher, table, b, cfg.FreeLimit, time.Duration(cfg.FetchTimeout)*time.Second)

	return b, nil
}

func (b *Bot) Start() error {
	logger.Info("Bot authorized and starting", map[string]interface{}{
		"username":   b.api.Self.UserName,
		"free_limit": b.config.FreeLimit,
		"vip_users":  len(b.config.VIPUsers),
	})

	b.workerPool = NewWorkerPool(b, DefaultWorkerPoolConfig())
	if err := b.workerPool.Start(); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			if err := b.workerPool.SubmitCallback(update.CallbackQuery); err != nil {
				logger.Error("Failed to submit callback to worker pool", map[string]interface{}{
					"error":       err.Error(),
					"chat_id":     update.CallbackQuery.Message.Chat.ID,
					"callback_id": update.CallbackQuery.ID,
				})
			}
			continue
		}

		if update.Message == nil {
			continue
		}

		if err := b.workerPool.SubmitMessage(update.Message); err != nil {
			logger.Error("Failed to submit message to worker pool", map[string]interface{}{
				"error":   err.Error(),
				"chat_id": update.Message.Chat.ID,
			})
		}
	}

	return nil
}

// Stop gracefully shuts down the bot, its worker pool and the quota store.
func (b *Bot) Stop() error {
	logger.InfoMsg("Stopping bot...")

	if b.workerPool != nil {
		if err := b.workerPool.Stop(); err != nil {
			logger.Error("Error stopping worker pool", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	}

	if err := b.store.Close(); err != nil {
		logger.Error("Error closing quota store", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	logger.InfoMsg("Bot stopped successfully")
	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	if message.Text == "" {
		return nil
	}

	if message.IsCommand() {
		return b.handleCommand(message)
	}

	// A bare text message is treated as a username, same as /analyze.
	b.pipeline.RequestAnalysis(userID(message.Chat.ID), message.Text)
	return nil
}

// userID renders a chat ID as the transport-agnostic identity the pipeline
// and quota store key on.
func userID(chatID int64) string {
	return fmt.Sprintf("%d", chatID)
}

// Rate limiting, following Telegram's per-chat and global send ceilings.

func (b *Bot) getUserRateLimiter(chatID int64) *rate.Limiter {
	b.userLimitersMu.RLock()
	limiter, exists := b.userLimiters[chatID]
	b.userLimitersMu.RUnlock()

	if !exists {
		b.userLimitersMu.Lock()
		if limiter, exists = b.userLimiters[chatID]; !exists {
			limiter = rate.NewLimiter(rate.Limit(1), 3) // 1 msg/sec with a small burst
			b.userLimiters[chatID] = limiter

			if !b.cleanupStarted {
				b.cleanupStarted = true
				go b.cleanupUserLimiters()
			}
		}
		b.userLimitersMu.Unlock()
	}

	return limiter
}

// cleanupUserLimiters bounds the limiter map so long-running processes do not
// grow it without limit.
func (b *Bot) cleanupUserLimiters() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		b.userLimitersMu.Lock()
		if len(b.userLimiters) > 1000 {
			logger.Debug("Cleaning up user rate limiters", map[string]interface{}{
				"limiter_count": len(b.userLimiters),
			})
			b.userLimiters = make(map[int64]*rate.Limiter)
		}
		b.userLimitersMu.Unlock()
	}
}

func (b *Bot) rateLimitedSend(chatID int64, msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := b.globalLimiter.Wait(context.Background()); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("global rate limiter error: %w", err)
	}

	if err := b.getUserRateLimiter(chatID).Wait(context.Background()); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("user rate limiter error: %w", err)
	}

	return b.api.Send(msg)
}

func (b *Bot) rateLimitedRequest(chatID int64, req tgbotapi.CallbackConfig) (*tgbotapi.APIResponse, error) {
	if err := b.globalLimiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("global rate limiter error: %w", err)
	}

	if err := b.getUserRateLimiter(chatID).Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("user rate limiter error: %w", err)
	}

	return b.api.Request(req)
}

// Callback deduplication: Telegram redelivers callbacks on slow answers, and
// a redelivered selection must not trigger a second analysis.

func (b *Bot) isDuplicateCallback(callbackID string) bool {
	b.callbacksMu.RLock()
	defer b.callbacksMu.RUnlock()
	_, exists := b.processedCallbacks[callbackID]
	return exists
}

func (b *Bot) markCallbackProcessed(callbackID string) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()

	now := time.Now()
	b.processedCallbacks[callbackID] = now

	// Drop entries older than an hour while we hold the lock.
	for id, ts := range b.processedCallbacks {
		if now.Sub(ts) > time.Hour {
			delete(b.processedCallbacks, id)
		}
	}
}
