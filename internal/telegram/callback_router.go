package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tikscope/tikscope/internal/analysis"
	"github.com/tikscope/tikscope/internal/logger"
)

func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) error {
	logger.Debug("Handling callback query", map[string]interface{}{
		"callback_data": callback.Data,
		"chat_id":       callback.Message.Chat.ID,
		"callback_id":   callback.ID,
	})

	if b.isDuplicateCallback(callback.ID) {
		logger.Debug("Duplicate callback detected, skipping", map[string]interface{}{
			"callback_id": callback.ID,
		})
		// Still answer the callback to prevent timeout
		callbackConfig := tgbotapi.NewCallback(callback.ID, "")
		b.rateLimitedRequest(callback.Message.Chat.ID, callbackConfig)
		return nil
	}
	b.markCallbackProcessed(callback.ID)

	// Answer the callback query first
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.rateLimitedRequest(callback.Message.Chat.ID, callbackConfig); err != nil {
		logger.Error("Failed to answer callback query", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if analysis.IsSelectionPayload(callback.Data) {
		b.pipeline.HandleSelection(context.Background(), userID(callback.Message.Chat.ID), callback.Data)
		return nil
	}

	logger.Debug("Unhandled callback data", map[string]interface{}{
		"callback_data": callback.Data,
		"chat_id":       callback.Message.Chat.ID,
	})

	return nil
}
