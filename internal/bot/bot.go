package bot

import (
	"context"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers messages to Telegram. *tgbotapi.BotAPI implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Handler interface {
	CanHandle(update tgbotapi.Update) bool
	Handle(ctx context.Context, bot Sender, update tgbotapi.Update)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	handlers []Handler
	wg       sync.WaitGroup
}

func New(token string, debug bool) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug

	log.Printf("[BOT] Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		sender:   api,
		handlers: make([]Handler, 0),
	}, nil
}

// Sender exposes the API client for components that only send messages.
func (b *Bot) Sender() Sender {
	return b.sender
}

func (b *Bot) RegisterHandler(h Handler) {
	b.handlers = append(b.handlers, h)
	log.Printf("[BOT] Registered handler: %T", h)
}

// Run receives updates until ctx is cancelled, then waits for running handlers.
func (b *Bot) Run(ctx context.Context) {
	log.Printf("[BOT] Starting bot with %d handlers", len(b.handlers))

	u := tgbotapi.NewUpdate(b.pendingOffset())
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[BOT] Stopping: %v", ctx.Err())
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			return
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

// pendingOffset skips updates that piled up while the bot was offline.
func (b *Bot) pendingOffset() int {
	pending, err := b.api.GetUpdates(tgbotapi.UpdateConfig{Offset: -1, Limit: 1})
	if err != nil || len(pending) == 0 {
		return 0
	}
	return pending[len(pending)-1].UpdateID + 1
}

// dispatch hands the update to the first matching handler in its own goroutine.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) bool {
	if update.Message != nil {
		from := "unknown"
		if update.Message.From != nil {
			from = update.Message.From.FirstName + " (@" + update.Message.From.UserName + ")"
		}
		log.Printf("[BOT] Message from %s: %s", from, update.Message.Text)
	}

	if update.Message == nil {
		log.Printf("[BOT] Skipping update: no message")
		return false
	}

	for _, handler := range b.handlers {
		if handler.CanHandle(update) {
			log.Printf("[BOT] Handling with: %T", handler)
			b.wg.Add(1)
			go func(h Handler) {
				defer b.wg.Done()
				h.Handle(ctx, b.sender, update)
			}(handler)
			return true
		}
	}

	log.Printf("[BOT] No handler found for update")
	return false
}
