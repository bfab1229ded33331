package handler

import (
	"context"
	"log"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/database/repository"
	"github.com/artur/pricewatch/internal/fetcher"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type StartHandler struct {
	subscriberRepo *repository.SubscriberRepository
	registry       *fetcher.Registry
}

func NewStartHandler(subscriberRepo *repository.SubscriberRepository, registry *fetcher.Registry) *StartHandler {
	return &StartHandler{
		subscriberRepo: subscriberRepo,
		registry:       registry,
	}
}

func (h *StartHandler) CanHandle(update tgbotapi.Update) bool {
	return isCommand(update, "start")
}

func (h *StartHandler) Handle(ctx context.Context, b bot.Sender, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	log.Printf("[START] Subscribing chat %d", chatID)

	if err := h.subscriberRepo.Register(ctx, chatID); err != nil {
		log.Printf("[START] Failed to register subscriber: %v", err)
	}

	reply(b, update.Message, helpText(h.registry), "START")
}

type HelpHandler struct {
	registry *fetcher.Registry
}

func NewHelpHandler(registry *fetcher.Registry) *HelpHandler {
	return &HelpHandler{registry: registry}
}

func (h *HelpHandler) CanHandle(update tgbotapi.Update) bool {
	return isCommand(update, "help")
}

func (h *HelpHandler) Handle(_ context.Context, b bot.Sender, update tgbotapi.Update) {
	reply(b, update.Message, helpText(h.registry), "HELP")
}
