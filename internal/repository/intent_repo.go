package repository

import (
	"go-pos-ws/internal/model"

	"gorm.io/gorm"
)

// IntentRepository persists the checkout saga journal. The intent row is
// written before any mutation and updated per sub-step; incomplete rows
// are the reconciliation surface for partial writes.
type IntentRepository interface {
	Create(intent *model.CheckoutIntent) error
	MarkStockApplied(orderID string) error
	MarkLedgerWritten(orderID string) error
	MarkStatsApplied(orderID string) error
	MarkCompleted(orderID string) error
	MarkFailed(orderID, reason string) error
	FindIncomplete() ([]model.CheckoutIntent, error)
}

type intentRepo struct {
	db *gorm.DB
}

func NewIntentRepo(db *gorm.DB) IntentRepository {
	return &intentRepo{db}
}

func (r *intentRepo) Create(intent *model.CheckoutIntent) error {
	return r.db.Create(intent).Error
}

func (r *intentRepo) setFlag(orderID, column string) error {
	return r.db.Model(&model.CheckoutIntent{}).
		Where("order_id = ?", orderID).
		Update(column, true).Error
}

func (r *intentRepo) MarkStockApplied(orderID string) error {
	return r.setFlag(orderID, "stock_applied")
}

func (r *intentRepo) MarkLedgerWritten(orderID string) error {
	return r.setFlag(orderID, "ledger_written")
}

func (r *intentRepo) MarkStatsApplied(orderID string) error {
	return r.setFlag(orderID, "stats_applied")
}

func (r *intentRepo) MarkCompleted(orderID string) error {
	return r.setFlag(orderID, "completed")
}

func (r *intentRepo) MarkFailed(orderID, reason string) error {
	return r.db.Model(&model.CheckoutIntent{}).
		Where("order_id = ?", orderID).
		Update("failure_reason", reason).Error
}

func (r *intentRepo) FindIncomplete() ([]model.CheckoutIntent, error) {
	var intents []model.CheckoutIntent
	err := r.db.Where("completed = ?", false).Order("created_at ASC").Find(&intents).Error
	return intents, err
}
