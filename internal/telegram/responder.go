package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tikscope/tikscope/internal/analysis"
	"github.com/tikscope/tikscope/internal/logger"
)

// Bot implements analysis.Responder: the pipeline speaks user identities and
// abstract buttons, this file translates them into Telegram sends.

func (b *Bot) SendText(userID, text string) {
	chatID, ok := parseChatID(userID)
	if !ok {
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "html"
	if _, err := b.rateLimitedSend(chatID, msg); err != nil {
		logger.Error("Failed to send message", map[string]interface{}{
			"error":   err.Error(),
			"chat_id": chatID,
		})
	}
}

func (b *Bot) SendButtons(userID, text string, buttons []analysis.Button) {
	chatID, ok := parseChatID(userID)
	if !ok {
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "html"
	msg.ReplyMarkup = buildKeyboard(buttons)
	if _, err := b.rateLimitedSend(chatID, msg); err != nil {
		logger.Error("Failed to send buttons", map[string]interface{}{
			"error":   err.Error(),
			"chat_id": chatID,
		})
	}
}

func (b *Bot) SendPhoto(userID, caption string, png []byte) {
	chatID, ok := parseChatID(userID)
	if !ok {
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "top_videos.png",
		Bytes: png,
	})
	photo.Caption = caption
	if _, err := b.rateLimitedSend(chatID, photo); err != nil {
		logger.Error("Failed to send photo", map[string]interface{}{
			"error":   err.Error(),
			"chat_id": chatID,
		})
	}
}

// buildKeyboard lays the country buttons out two per row.
func buildKeyboard(buttons []analysis.Button) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(buttons); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(buttons[i].Label, buttons[i].Data),
		}
		if i+1 < len(buttons) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(buttons[i+1].Label, buttons[i+1].Data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func parseChatID(userID string) (int64, bool) {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		logger.Error("Invalid user identity for Telegram chat", map[string]interface{}{
			"user_id": userID,
		})
		return 0, false
	}
	return chatID, true
}
