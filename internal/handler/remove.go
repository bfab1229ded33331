package handler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/database/repository"
	"github.com/artur/pricewatch/internal/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type RemoveHandler struct {
	productRepo *repository.ProductRepository
}

func NewRemoveHandler(productRepo *repository.ProductRepository) *RemoveHandler {
	return &RemoveHandler{productRepo: productRepo}
}

func (h *RemoveHandler) CanHandle(update tgbotapi.Update) bool {
	return isCommand(update, "remove")
}

func (h *RemoveHandler) Handle(ctx context.Context, b bot.Sender, update tgbotapi.Update) {
	id, err := strconv.ParseInt(strings.TrimSpace(update.Message.CommandArguments()), 10, 64)
	if err != nil {
		reply(b, update.Message, "Usage: /remove 3", "REMOVE")
		return
	}

	removed, err := h.productRepo.Delete(ctx, id)
	if err != nil {
		log.Printf("[REMOVE] Failed to remove product #%d: %v", id, err)
		reply(b, update.Message, "❌ Could not remove the product, please try again later.", "REMOVE")
		return
	}

	if !removed {
		reply(b, update.Message, fmt.Sprintf("Product #%d not found.", id), "REMOVE")
		return
	}

	metrics.ProductsRemoved.Inc()
	log.Printf("[REMOVE] Removed product #%d", id)
	reply(b, update.Message, fmt.Sprintf("🗑 Product #%d removed.", id), "REMOVE")
}
