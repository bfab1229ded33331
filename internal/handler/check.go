package handler

import (
	"context"
	"log"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type CheckHandler struct {
	subscriberRepo *repository.SubscriberRepository
	trigger        CheckTrigger
}

func NewCheckHandler(subscriberRepo *repository.SubscriberRepository, trigger CheckTrigger) *CheckHandler {
	return &CheckHandler{
		subscriberRepo: subscriberRepo,
		trigger:        trigger,
	}
}

func (h *CheckHandler) CanHandle(update tgbotapi.Update) bool {
	return isCommand(update, "check")
}

func (h *CheckHandler) Handle(ctx context.Context, b bot.Sender, update tgbotapi.Update) {
	if err := h.subscriberRepo.Register(ctx, update.Message.Chat.ID); err != nil {
		log.Printf("[CHECK] Failed to register subscriber: %v", err)
	}

	reply(b, update.Message, "⏳ Checking prices...", "CHECK")

	if !h.trigger.TriggerCheck(true) {
		reply(b, update.Message, "A check is already queued, results will follow.", "CHECK")
	}
}
