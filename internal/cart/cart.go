package cart

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrItemNotFound      = errors.New("item not in cart")
)

// LineItem is one product selected for the in-progress sale. UnitPrice
// and AvailableStock are snapshots taken when the item was added.
type LineItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPrice      int64     `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	AvailableStock int       `json:"available_stock"`
}

// Subtotal is the line total in the smallest currency unit.
func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Cart holds the ordered line items of one terminal session, keyed
// uniquely by product id. Transitions are pure functions of
// (state, action); the capacity invariant is enforced here, not by
// callers: a mutation that would push a quantity past the live stock
// is rejected with ErrInsufficientStock.
type Cart struct {
	items []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of an existing line by one, or appends
// a new line with quantity 1. liveStock is the authoritative current
// stock of the product; the transition is rejected when the resulting
// quantity would exceed it.
func (c *Cart) AddItem(productID uuid.UUID, name string, unitPrice int64, liveStock int) error {
	if i := c.indexOf(productID); i >= 0 {
		if c.items[i].Quantity+1 > liveStock {
			return ErrInsufficientStock
		}
		c.items[i].Quantity++
		c.items[i].AvailableStock = liveStock
		return nil
	}

	if liveStock < 1 {
		return ErrInsufficientStock
	}
	c.items = append(c.items, LineItem{
		ProductID:      productID,
		Name:           name,
		UnitPrice:      unitPrice,
		Quantity:       1,
		AvailableStock: liveStock,
	})
	return nil
}

// SetQuantity replaces a line's quantity verbatim. A quantity <= 0
// behaves exactly like RemoveItem. Quantities above the live stock are
// rejected.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity, liveStock int) error {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}

	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	if quantity > liveStock {
		return ErrInsufficientStock
	}
	c.items[i].Quantity = quantity
	c.items[i].AvailableStock = liveStock
	return nil
}

// RemoveItem deletes the line item; no-op if absent.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if i := c.indexOf(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the current line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, li := range c.items {
		total += li.Subtotal()
	}
	return total
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	var total int
	for _, li := range c.items {
		total += li.Quantity
	}
	return total
}
