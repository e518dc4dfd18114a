package model

import (
	"github.com/google/uuid"
)

// CheckoutIntent is the durable record of an in-flight checkout, written
// before any inventory mutation. Each sub-step sets its flag as it
// commits; an intent that never reaches Completed marks a partial write
// that needs reconciliation. The underlying store only gives
// per-document atomicity, so this is a saga journal, not a transaction.
type CheckoutIntent struct {
	BaseModel
	OrderID        string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_id"`
	UserID         uuid.UUID     `gorm:"type:uuid;not null" json:"user_id"`
	StoreID        string        `gorm:"type:varchar(100)" json:"store_id"`
	TotalAmount    int64         `gorm:"not null" json:"total_amount"`
	TotalItemCount int           `gorm:"not null" json:"total_item_count"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`

	StockApplied  bool `gorm:"default:false" json:"stock_applied"`
	LedgerWritten bool `gorm:"default:false" json:"ledger_written"`
	StatsApplied  bool `gorm:"default:false" json:"stats_applied"`
	Completed     bool `gorm:"default:false;index" json:"completed"`

	FailureReason string `gorm:"type:text" json:"failure_reason,omitempty"`
}
