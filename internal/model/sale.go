package model

import "github.com/google/uuid"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "COMPLETED"
)

// Sale is the general sales-ledger view of a completed checkout.
// Append-only: rows are never mutated after creation.
type Sale struct {
	BaseModel
	OrderID        string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_id" validate:"required"`
	UserID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User           *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StoreID        string        `gorm:"type:varchar(100);index" json:"store_id"`
	Items          []SaleItem    `json:"items" validate:"dive"`
	TotalAmount    int64         `gorm:"not null" json:"total_amount" validate:"gt=0"`
	TotalItemCount int           `gorm:"not null" json:"total_item_count" validate:"gt=0"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method" validate:"required,oneof=CASH QRIS"`
	Status         SaleStatus    `gorm:"type:varchar(20);not null;default:'COMPLETED'" json:"status"`
}

// SaleItem snapshots one cart line at checkout time. Name and price are
// copied from the product so later catalog edits cannot rewrite history.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"`
}
