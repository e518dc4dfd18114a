package repository

import (
	"time"

	"go-pos-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevenueSummary is the derived read model over the revenue ledger.
type RevenueSummary struct {
	TodayRevenue   int64 `json:"today_revenue"`
	TodaySales     int64 `json:"today_sales"`
	AllTimeRevenue int64 `json:"all_time_revenue"`
	AllTimeSales   int64 `json:"all_time_sales"`
}

type SaleRepository interface {
	// CreateSale appends to the general sales-ledger view.
	CreateSale(sale *model.Sale) error
	// CreateRevenueRecord appends to the revenue-oriented ledger view.
	// Independent of CreateSale: a failure here does not undo it.
	CreateRevenueRecord(record *model.RevenueRecord) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	GetRevenueSummary() (*RevenueSummary, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) CreateSale(sale *model.Sale) error {
	return r.db.Create(sale).Error
}

func (r *saleRepo) CreateRevenueRecord(record *model.RevenueRecord) error {
	return r.db.Create(record).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Preload("User").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("User").First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetRevenueSummary recomputes today's and all-time totals by filtering
// the revenue ledger by timestamp. Pure derived view, not authoritative.
func (r *saleRepo) GetRevenueSummary() (*RevenueSummary, error) {
	var summary RevenueSummary

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err := r.db.Model(&model.RevenueRecord{}).
		Where("created_at >= ?", startOfDay).
		Select("COALESCE(SUM(amount), 0) as today_revenue, COUNT(*) as today_sales").
		Row().Scan(&summary.TodayRevenue, &summary.TodaySales)
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.RevenueRecord{}).
		Select("COALESCE(SUM(amount), 0) as all_time_revenue, COUNT(*) as all_time_sales").
		Row().Scan(&summary.AllTimeRevenue, &summary.AllTimeSales)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
