package repository

import (
	"time"

	"go-pos-ws/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	// ApplyIncrement adds the delta to the store's running totals as one
	// atomic upsert. Never read-modify-write, so concurrent checkouts for
	// the same store cannot lose an update. Explicitly NOT idempotent:
	// retrying the same sale double-counts.
	ApplyIncrement(storeID string, delta model.StatsDelta) error
	Find(storeID string) (*model.StoreStats, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db}
}

func (r *statsRepo) ApplyIncrement(storeID string, delta model.StatsDelta) error {
	now := time.Now()
	stats := model.StoreStats{
		StoreID:      storeID,
		TotalSales:   delta.Sales,
		TotalRevenue: delta.Revenue,
		TotalProfit:  delta.Profit,
		LastSaleAt:   &now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_sales":   gorm.Expr("store_stats.total_sales + ?", delta.Sales),
			"total_revenue": gorm.Expr("store_stats.total_revenue + ?", delta.Revenue),
			"total_profit":  gorm.Expr("store_stats.total_profit + ?", delta.Profit),
			"last_sale_at":  now,
			"updated_at":    now,
		}),
	}).Create(&stats).Error
}

func (r *statsRepo) Find(storeID string) (*model.StoreStats, error) {
	var stats model.StoreStats
	if err := r.db.First(&stats, "store_id = ?", storeID).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
