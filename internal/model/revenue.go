package model

import "github.com/google/uuid"

// RevenueRecord is the second, revenue-oriented ledger view of a
// completed checkout. It is written alongside Sale with identical
// totals, flattened for the reporting read path. The duplication is
// deliberate: both views are built from the same immutable checkout
// snapshot, so they agree by construction.
type RevenueRecord struct {
	BaseModel
	OrderID       string        `gorm:"type:varchar(50);index;not null" json:"order_id"`
	SaleID        uuid.UUID     `gorm:"type:uuid;index" json:"sale_id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null" json:"user_id"`
	StoreID       string        `gorm:"type:varchar(100);index" json:"store_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Profit        int64         `gorm:"not null" json:"profit"`
	ItemCount     int           `gorm:"not null" json:"item_count"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
}
