package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Command router. /start and /help are a stateless, read-only path outside
// the analysis state machine.

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStartCommand(message)
	case "help":
		return b.handleHelpCommand(message)
	case "analyze":
		b.pipeline.RequestAnalysis(userID(message.Chat.ID), message.CommandArguments())
		return nil
	case "usage":
		return b.handleUsageCommand(message)
	default:
		b.SendText(userID(message.Chat.ID), UnknownCommandMsg)
		return nil
	}
}

func (b *Bot) handleStartCommand(message *tgbotapi.Message) error {
	b.SendText(userID(message.Chat.ID), fmt.Sprintf(WelcomeTemplate, b.config.FreeLimit, b.config.FreeLimit))
	return nil
}

func (b *Bot) handleHelpCommand(message *tgbotapi.Message) error {
	b.SendText(userID(message.Chat.ID), fmt.Sprintf(HelpTemplate, b.config.FreeLimit))
	return nil
}

func (b *Bot) handleUsageCommand(message *tgbotapi.Message) error {
	id := userID(message.Chat.ID)
	used, remaining := b.pipeline.Usage(context.Background(), id)
	b.SendText(id, fmt.Sprintf(UsageTemplate, used, remaining))
	return nil
}
