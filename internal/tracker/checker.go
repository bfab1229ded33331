package tracker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/artur/pricewatch/internal/database/models"
	"github.com/artur/pricewatch/internal/fetcher"
	"github.com/artur/pricewatch/internal/metrics"
)

const NothingTrackedMessage = "No products are being tracked yet. Use /add to add one."

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	UpdatePrice(ctx context.Context, id int64, price float64, checkedAt time.Time) (bool, error)
}

type SubscriberStore interface {
	ChatIDs(ctx context.Context) ([]int64, error)
}

type Broadcaster interface {
	Broadcast(chatIDs []int64, text string)
}

// Checker runs price check cycles. Cycles started concurrently run one after another.
type Checker struct {
	products    ProductStore
	subscribers SubscriberStore
	fetcher     fetcher.PriceFetcher
	notifier    Broadcaster
	now         func() time.Time

	mu sync.Mutex
}

func NewChecker(products ProductStore, subscribers SubscriberStore, f fetcher.PriceFetcher, n Broadcaster) *Checker {
	return &Checker{
		products:    products,
		subscribers: subscribers,
		fetcher:     f,
		notifier:    n,
		now:         time.Now,
	}
}

// Run performs one pass over every tracked product. manual marks a cycle
// requested by a user rather than the timer.
func (c *Checker) Run(ctx context.Context, manual bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	trigger := "scheduled"
	if manual {
		trigger = "manual"
	}
	metrics.PriceChecks.WithLabelValues(trigger).Inc()

	products, err := c.products.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if len(products) == 0 {
		if !manual {
			return nil
		}
		chatIDs, err := c.subscribers.ChatIDs(ctx)
		if err != nil {
			return fmt.Errorf("failed to list subscribers: %w", err)
		}
		c.notifier.Broadcast(chatIDs, NothingTrackedMessage)
		return nil
	}

	chatIDs, err := c.subscribers.ChatIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}
	if len(chatIDs) == 0 {
		log.Printf("[CHECK] No subscribers, skipping %d products", len(products))
		return nil
	}

	log.Printf("[CHECK] Starting %s check of %d products", trigger, len(products))

	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.checkProduct(ctx, p, chatIDs)
	}

	log.Printf("[CHECK] Finished %s check", trigger)
	return nil
}

func (c *Checker) checkProduct(ctx context.Context, p models.Product, chatIDs []int64) {
	price, found, err := c.fetcher.FetchPrice(ctx, p.URL)
	if err != nil {
		metrics.FetchFailures.Inc()
		log.Printf("[CHECK] #%d %s: fetch failed: %v", p.ID, p.Name, err)
		c.notifier.Broadcast(chatIDs, fetchFailedMessage(p, err))
		return
	}
	if !found {
		metrics.PricesNotFound.Inc()
		log.Printf("[CHECK] #%d %s: no price on page", p.ID, p.Name)
		return
	}

	reasons := alertReasons(p, price)

	updated, err := c.products.UpdatePrice(ctx, p.ID, price, c.now())
	if err != nil {
		log.Printf("[CHECK] #%d %s: failed to store price: %v", p.ID, p.Name, err)
		return
	}
	if !updated {
		log.Printf("[CHECK] #%d %s: stored price is newer or product was removed", p.ID, p.Name)
		return
	}

	log.Printf("[CHECK] #%d %s: %.2f", p.ID, p.Name, price)

	if len(reasons) == 0 {
		return
	}
	metrics.Alerts.Inc()
	c.notifier.Broadcast(chatIDs, alertMessage(p, price, reasons))
}

// alertReasons lists why a newly observed price deserves an alert.
// A first observation and a drop are exclusive; the target check is independent.
func alertReasons(p models.Product, price float64) []string {
	var reasons []string

	switch {
	case p.LastPrice == nil:
		reasons = append(reasons, "first price recorded")
	case price < *p.LastPrice:
		reasons = append(reasons, fmt.Sprintf("price dropped (%.2f → %.2f)", *p.LastPrice, price))
	}

	if p.TargetPrice != nil && price <= *p.TargetPrice {
		reasons = append(reasons, fmt.Sprintf("below target (target %.2f)", *p.TargetPrice))
	}

	return reasons
}

func alertMessage(p models.Product, price float64, reasons []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 %s\n", p.Name)
	fmt.Fprintf(&b, "URL: %s\n", p.URL)
	fmt.Fprintf(&b, "💰 Current price: %.2f\n", price)
	b.WriteString(strings.Join(reasons, "\n"))
	return b.String()
}

func fetchFailedMessage(p models.Product, err error) string {
	return fmt.Sprintf("⚠️ Could not fetch the price of %s: %v", p.Name, err)
}
