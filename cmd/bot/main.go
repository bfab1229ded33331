package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/artur/pricewatch/internal/bot"
	"github.com/artur/pricewatch/internal/config"
	"github.com/artur/pricewatch/internal/database"
	"github.com/artur/pricewatch/internal/database/repository"
	"github.com/artur/pricewatch/internal/fetcher"
	"github.com/artur/pricewatch/internal/handler"
	"github.com/artur/pricewatch/internal/metrics"
	"github.com/artur/pricewatch/internal/notifier"
	"github.com/artur/pricewatch/internal/tracker"
)

func main() {
	conf, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(conf.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	productRepo := repository.NewProductRepository(db.DB)
	subscriberRepo := repository.NewSubscriberRepository(db.DB)

	registry := fetcher.DefaultRegistry()
	priceFetcher := fetcher.New(registry, conf.FetchTimeout)

	b, err := bot.New(conf.Token, conf.DebugMode)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	checker := tracker.NewChecker(productRepo, subscriberRepo, priceFetcher, notifier.New(b.Sender()))
	scheduler := tracker.NewScheduler(checker, conf.CheckInterval)

	// order matters, the fallback must stay last
	b.RegisterHandler(handler.NewStartHandler(subscriberRepo, registry))
	b.RegisterHandler(handler.NewHelpHandler(registry))
	b.RegisterHandler(handler.NewAddHandler(productRepo, subscriberRepo, registry))
	b.RegisterHandler(handler.NewListHandler(productRepo))
	b.RegisterHandler(handler.NewRemoveHandler(productRepo))
	b.RegisterHandler(handler.NewHistoryHandler(productRepo))
	b.RegisterHandler(handler.NewCheckHandler(subscriberRepo, scheduler))
	b.RegisterHandler(handler.NewFallbackHandler())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.MetricsServerPort != "" {
		srv := metrics.StartMetricsServer(conf.MetricsServerPort)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("[METRICS] Shutdown failed: %v", err)
			}
		}()
	}

	go scheduler.Start(ctx)

	log.Printf("Checking %d sites every %s", len(registry.Names()), conf.CheckInterval)
	b.Run(ctx)
	log.Println("Shutting down")
}
