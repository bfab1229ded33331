package handler

import (
	"log"
	"strings"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/fetcher"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is the Telegram limit for a single text message.
const maxMessageLength = 4096

// CheckTrigger starts a price check without waiting for it.
type CheckTrigger interface {
	TriggerCheck(manual bool) bool
}

func isCommand(update tgbotapi.Update, command string) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == command
}

func reply(b bot.Sender, message *tgbotapi.Message, text, tag string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	msg.DisableWebPagePreview = true
	if _, err := b.Send(msg); err != nil {
		log.Printf("[%s] Failed to send message: %v", tag, err)
	}
}

func helpText(registry *fetcher.Registry) string {
	return "🔔 Price Watch Bot\n" +
		"/start – subscribe to alerts and show this help\n" +
		"/help – show this help\n" +
		"/add NAME | URL | TARGET_PRICE (optional)\n" +
		"/list – list tracked products\n" +
		"/remove ID – stop tracking a product\n" +
		"/history ID – show recent prices of a product\n" +
		"/check – check prices now\n" +
		"Supported sites: " + strings.Join(registry.Names(), ", ")
}

// splitMessage joins blocks with blank lines into as few messages as the
// length limit allows. A single oversized block is sent on its own.
func splitMessage(blocks []string, limit int) []string {
	var messages []string
	var current strings.Builder

	for _, block := range blocks {
		if current.Len() > 0 && current.Len()+2+len(block) > limit {
			messages = append(messages, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(block)
	}
	if current.Len() > 0 {
		messages = append(messages, current.String())
	}
	return messages
}
