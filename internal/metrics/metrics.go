package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PriceChecks counts check cycles by trigger ("manual" or "scheduled").
	PriceChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_checks_total",
		Help: "The total number of price check cycles",
	}, []string{"trigger"})

	// FetchFailures counts products whose page could not be fetched.
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_fetch_failures_total",
		Help: "The total number of failed price fetches",
	})

	// PricesNotFound counts pages fetched without a recognizable price.
	PricesNotFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_not_found_total",
		Help: "The total number of fetched pages without a price",
	})

	// Alerts counts price alerts broadcast to subscribers.
	Alerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_alerts_total",
		Help: "The total number of price alerts broadcast",
	})

	// NotificationsFailed counts messages Telegram refused to deliver.
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "The total number of notifications that could not be sent",
	})

	// ProductsAdded is a Prometheus counter for products added through /add.
	ProductsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_added_total",
		Help: "The total number of products added",
	})

	// ProductsRemoved is a Prometheus counter for products removed through /remove.
	ProductsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_removed_total",
		Help: "The total number of products removed",
	})
)
