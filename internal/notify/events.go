// Package notify defines the closed set of notification events the
// backend pushes to POS terminals, and the Emitter capability that
// delivers them. Each kind carries only the fields relevant to it.
package notify

import "github.com/google/uuid"

type Kind string

const (
	KindSaleCompleted  Kind = "sale_completed"
	KindStockDepleted  Kind = "stock_depleted"
	KindLowStock       Kind = "low_stock"
	KindProductAdded   Kind = "product_added"
	KindProductUpdated Kind = "product_updated"
)

// Event is implemented by every notification kind.
type Event interface {
	Kind() Kind
}

// Emitter delivers events to whoever is listening. Emission is fire and
// forget: a slow or absent listener never blocks or fails the caller.
type Emitter interface {
	Emit(event Event)
}

type SaleCompleted struct {
	OrderID       string `json:"order_id"`
	TotalAmount   int64  `json:"total_amount"`
	ItemCount     int    `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
	CashierName   string `json:"cashier_name"`
}

func (SaleCompleted) Kind() Kind { return KindSaleCompleted }

type StockDepleted struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
}

func (StockDepleted) Kind() Kind { return KindStockDepleted }

type LowStock struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Remaining   int       `json:"remaining"`
}

func (LowStock) Kind() Kind { return KindLowStock }

type ProductAdded struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	Price     int64     `json:"price"`
	ByName    string    `json:"by_name"`
}

func (ProductAdded) Kind() Kind { return KindProductAdded }

type ProductUpdated struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	Price     int64     `json:"price"`
	ByName    string    `json:"by_name"`
}

func (ProductUpdated) Kind() Kind { return KindProductUpdated }
