package model

import "time"

// StoreStats holds running per-store totals. Mutated exclusively through
// atomic increments keyed by store id, never read-modify-write, so
// concurrent checkouts for the same store cannot lose an update.
type StoreStats struct {
	StoreID      string     `gorm:"type:varchar(100);primaryKey" json:"store_id"`
	TotalSales   int64      `gorm:"default:0" json:"total_sales"`
	TotalRevenue int64      `gorm:"default:0" json:"total_revenue"`
	TotalProfit  int64      `gorm:"default:0" json:"total_profit"`
	LastSaleAt   *time.Time `json:"last_sale_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StatsDelta is one increment applied to StoreStats.
type StatsDelta struct {
	Sales   int64
	Revenue int64
	Profit  int64
}
