package notifier

import (
	"fmt"
	"log"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends plain-text messages to Telegram chats.
type Notifier struct {
	sender bot.Sender
}

func New(sender bot.Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Notify sends text to a single chat.
func (n *Notifier) Notify(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to notify chat %d: %w", chatID, err)
	}
	return nil
}

// Broadcast sends text to every chat. Failures are logged and skipped.
func (n *Notifier) Broadcast(chatIDs []int64, text string) {
	for _, chatID := range chatIDs {
		if err := n.Notify(chatID, text); err != nil {
			metrics.NotificationsFailed.Inc()
			log.Printf("[NOTIFY] %v", err)
		}
	}
}
