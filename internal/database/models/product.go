package models

import "time"

// Product is a tracked product page.
// TargetPrice, LastPrice and LastChecked are nil until set.
type Product struct {
	ID          int64
	Name        string
	URL         string
	TargetPrice *float64
	LastPrice   *float64
	LastChecked *time.Time
	CreatedAt   time.Time
}
