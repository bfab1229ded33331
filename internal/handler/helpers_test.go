package handler

import (
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/artur/pricewatch/internal/database"
	"github.com/artur/pricewatch/internal/database/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []tgbotapi.MessageConfig
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.messages = append(s.messages, msg)
	}
	return tgbotapi.Message{}, nil
}

func (s *recordingSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := make([]string, 0, len(s.messages))
	for _, m := range s.messages {
		texts = append(texts, m.Text)
	}
	return texts
}

type fakeTrigger struct {
	mu      sync.Mutex
	calls   []bool
	pending bool
}

func (f *fakeTrigger) TriggerCheck(manual bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, manual)
	if f.pending {
		return false
	}
	f.pending = true
	return true
}

type repos struct {
	db          *sql.DB
	products    *repository.ProductRepository
	subscribers *repository.SubscriberRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, (&database.DB{DB: db}).Migrate())

	return repos{
		db:          db,
		products:    repository.NewProductRepository(db),
		subscribers: repository.NewSubscriberRepository(db),
	}
}

// commandUpdate builds an update the way Telegram delivers a command message.
func commandUpdate(chatID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 7,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: chatID},
		From:      &tgbotapi.User{ID: chatID, FirstName: "Test"},
	}
	if strings.HasPrefix(text, "/") {
		length := len(text)
		if i := strings.IndexByte(text, ' '); i != -1 {
			length = i
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	}
	return tgbotapi.Update{Message: msg}
}
