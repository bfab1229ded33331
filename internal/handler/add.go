package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/database/repository"
	"github.com/artur/pricewatch/internal/fetcher"
	"github.com/artur/pricewatch/internal/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const addUsage = "Usage: /add NAME | URL | TARGET_PRICE (optional)"

var (
	errAddUsage      = errors.New(addUsage)
	errNameAndURL    = errors.New("A name and a URL are required.")
	errInvalidTarget = errors.New("The target price must be a positive number.")
)

type AddHandler struct {
	productRepo    *repository.ProductRepository
	subscriberRepo *repository.SubscriberRepository
	registry       *fetcher.Registry
}

func NewAddHandler(productRepo *repository.ProductRepository, subscriberRepo *repository.SubscriberRepository, registry *fetcher.Registry) *AddHandler {
	return &AddHandler{
		productRepo:    productRepo,
		subscriberRepo: subscriberRepo,
		registry:       registry,
	}
}

func (h *AddHandler) CanHandle(update tgbotapi.Update) bool {
	return isCommand(update, "add")
}

func (h *AddHandler) Handle(ctx context.Context, b bot.Sender, update tgbotapi.Update) {
	if err := h.subscriberRepo.Register(ctx, update.Message.Chat.ID); err != nil {
		log.Printf("[ADD] Failed to register subscriber: %v", err)
	}

	name, url, target, err := parseAddArgs(update.Message.CommandArguments())
	if err != nil {
		reply(b, update.Message, err.Error(), "ADD")
		return
	}

	product, err := h.productRepo.Create(ctx, name, url, target)
	if err != nil {
		log.Printf("[ADD] Failed to add product: %v", err)
		reply(b, update.Message, "❌ Could not add the product, please try again later.", "ADD")
		return
	}
	metrics.ProductsAdded.Inc()
	log.Printf("[ADD] Added product #%d %s", product.ID, product.Name)

	text := fmt.Sprintf("✅ #%d %s added.\nURL: %s", product.ID, product.Name, product.URL)
	if product.TargetPrice != nil {
		text += fmt.Sprintf("\n🎯 Target price: %.2f", *product.TargetPrice)
	}
	if _, err := h.registry.Lookup(url); err != nil {
		text += fmt.Sprintf("\n⚠️ %v, price checks will fail for this product.", err)
	}
	reply(b, update.Message, text, "ADD")
}

// parseAddArgs splits "name | url | target" and validates each part.
func parseAddArgs(args string) (name, url string, target *float64, err error) {
	if strings.TrimSpace(args) == "" {
		return "", "", nil, errAddUsage
	}

	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", nil, errNameAndURL
	}

	name, url = parts[0], parts[1]
	if len(parts) >= 3 && parts[2] != "" {
		v, err := parseTargetPrice(parts[2])
		if err != nil {
			return "", "", nil, err
		}
		target = &v
	}
	return name, url, target, nil
}

// parseTargetPrice accepts a decimal comma or point.
func parseTargetPrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errInvalidTarget
	}
	return v, nil
}
