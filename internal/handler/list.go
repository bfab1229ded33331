package handler

import (
	"context"
	"fmt"
	"log"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/database/models"
	"github.com/artur/pricewatch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const emptyListText = "👀 No products yet. Use /add to track one."

type ListHandler struct {
	productRepo *repository.ProductRepository
}

func NewListHandler(productRepo *repository.ProductRepository) *ListHandler {
	return &ListHandler{productRepo: productRepo}
}

func (h *ListHandler) CanHandle(update tgbotapi.Update) bool {
	return isCommand(update, "list")
}

func (h *ListHandler) Handle(ctx context.Context, b bot.Sender, update tgbotapi.Update) {
	products, err := h.productRepo.List(ctx)
	if err != nil {
		log.Printf("[LIST] Failed to list products: %v", err)
		reply(b, update.Message, "❌ Could not load the product list, please try again later.", "LIST")
		return
	}

	if len(products) == 0 {
		reply(b, update.Message, emptyListText, "LIST")
		return
	}

	blocks := make([]string, 0, len(products))
	for _, p := range products {
		blocks = append(blocks, formatProduct(p))
	}
	for _, text := range splitMessage(blocks, maxMessageLength) {
		reply(b, update.Message, text, "LIST")
	}
}

func formatProduct(p models.Product) string {
	return fmt.Sprintf("#%d %s\nURL: %s\n🎯 Target: %s | 💰 Last: %s | ⏱ %s",
		p.ID, p.Name, p.URL, formatPrice(p.TargetPrice), formatPrice(p.LastPrice), formatChecked(p))
}

func formatPrice(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatChecked(p models.Product) string {
	if p.LastChecked == nil {
		return "–"
	}
	return p.LastChecked.UTC().Format("2006-01-02 15:04 UTC")
}
