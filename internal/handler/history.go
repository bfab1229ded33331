package handler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const historyLimit = 10

type HistoryHandler struct {
	productRepo *repository.ProductRepository
}

func NewHistoryHandler(productRepo *repository.ProductRepository) *HistoryHandler {
	return &HistoryHandler{productRepo: productRepo}
}

func (h *HistoryHandler) CanHandle(update tgbotapi.Update) bool {
	return isCommand(update, "history")
}

func (h *HistoryHandler) Handle(ctx context.Context, b bot.Sender, update tgbotapi.Update) {
	id, err := strconv.ParseInt(strings.TrimSpace(update.Message.CommandArguments()), 10, 64)
	if err != nil {
		reply(b, update.Message, "Usage: /history 3", "HISTORY")
		return
	}

	product, err := h.productRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("[HISTORY] Failed to get product #%d: %v", id, err)
		reply(b, update.Message, "❌ Could not load the price history, please try again later.", "HISTORY")
		return
	}
	if product == nil {
		reply(b, update.Message, fmt.Sprintf("Product #%d not found.", id), "HISTORY")
		return
	}

	records, err := h.productRepo.History(ctx, id, historyLimit)
	if err != nil {
		log.Printf("[HISTORY] Failed to get history of #%d: %v", id, err)
		reply(b, update.Message, "❌ Could not load the price history, please try again later.", "HISTORY")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 #%d %s", product.ID, product.Name)
	if len(records) == 0 {
		sb.WriteString("\nNo prices recorded yet.")
	}
	for _, rec := range records {
		fmt.Fprintf(&sb, "\n%s  %.2f", rec.CheckedAt.UTC().Format("2006-01-02 15:04"), rec.Price)
	}
	reply(b, update.Message, sb.String(), "HISTORY")
}
