package handler

import (
	"context"

	"github.com/artur/pricewatch/internal/bot"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const fallbackText = "Sorry, I did not understand that. Send /help for the list of commands."

// FallbackHandler answers anything no other handler accepted. Register it last.
type FallbackHandler struct{}

func NewFallbackHandler() *FallbackHandler {
	return &FallbackHandler{}
}

func (h *FallbackHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil
}

func (h *FallbackHandler) Handle(_ context.Context, b bot.Sender, update tgbotapi.Update) {
	reply(b, update.Message, fallbackText, "FALLBACK")
}
