package models

import "time"

// PriceRecord is one successful price observation
type PriceRecord struct {
	ID        int64
	ProductID int64
	Price     float64
	CheckedAt time.Time
}
