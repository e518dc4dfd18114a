package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem_NewLine(t *testing.T) {
	c := New()
	id := uuid.New()

	err := c.AddItem(id, "Kopi Susu", 5000, 10)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(5000), items[0].UnitPrice)
	assert.Equal(t, 10, items[0].AvailableStock)
}

func TestAddItem_SameProductMergesQuantity(t *testing.T) {
	c := New()
	id := uuid.New()

	require.NoError(t, c.AddItem(id, "Kopi Susu", 5000, 10))
	require.NoError(t, c.AddItem(id, "Kopi Susu", 5000, 10))

	items := c.Items()
	require.Len(t, items, 1, "duplicate add must merge, not append")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItem_RejectsWhenStockExhausted(t *testing.T) {
	c := New()
	id := uuid.New()

	require.NoError(t, c.AddItem(id, "Teh Botol", 3000, 1))
	err := c.AddItem(id, "Teh Botol", 3000, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, c.TotalItems(), "failed transition must not mutate state")
}

func TestAddItem_RejectsOutOfStockProduct(t *testing.T) {
	c := New()
	err := c.AddItem(uuid.New(), "Habis", 1000, 0)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, c.IsEmpty())
}

func TestSetQuantity_ReplacesVerbatim(t *testing.T) {
	c := New()
	id := uuid.New()
	require.NoError(t, c.AddItem(id, "Roti", 8000, 20))

	require.NoError(t, c.SetQuantity(id, 7, 20))
	assert.Equal(t, 7, c.TotalItems())
	assert.Equal(t, int64(56000), c.TotalPrice())
}

func TestSetQuantity_ZeroBehavesAsRemove(t *testing.T) {
	c := New()
	id := uuid.New()
	require.NoError(t, c.AddItem(id, "Roti", 8000, 20))

	require.NoError(t, c.SetQuantity(id, 0, 20))

	removed := New()
	require.NoError(t, removed.AddItem(id, "Roti", 8000, 20))
	removed.RemoveItem(id)

	assert.Equal(t, removed.Items(), c.Items())
	assert.True(t, c.IsEmpty())
}

func TestSetQuantity_NegativeBehavesAsRemove(t *testing.T) {
	c := New()
	id := uuid.New()
	require.NoError(t, c.AddItem(id, "Roti", 8000, 20))

	require.NoError(t, c.SetQuantity(id, -3, 20))
	assert.True(t, c.IsEmpty())
}

func TestSetQuantity_RejectsBeyondLiveStock(t *testing.T) {
	c := New()
	id := uuid.New()
	require.NoError(t, c.AddItem(id, "Roti", 8000, 20))

	err := c.SetQuantity(id, 21, 20)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, c.TotalItems())
}

func TestSetQuantity_UnknownItem(t *testing.T) {
	c := New()
	err := c.SetQuantity(uuid.New(), 2, 5)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem_NoopWhenAbsent(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(uuid.New(), "A", 100, 5))

	c.RemoveItem(uuid.New())
	assert.Equal(t, 1, len(c.Items()))
}

func TestClear_AlwaysYieldsEmptyCart(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(uuid.New(), "A", 100, 5))
	require.NoError(t, c.AddItem(uuid.New(), "B", 200, 5))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalPrice())
	assert.Equal(t, 0, c.TotalItems())
}

// Totals law: after any sequence of operations, TotalItems equals the
// sum of quantities and TotalPrice equals sum of unitPrice*quantity.
func TestDerivedTotals_MatchLineItems(t *testing.T) {
	c := New()
	a, b, d := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, c.AddItem(a, "A", 5000, 10))
	require.NoError(t, c.AddItem(b, "B", 3000, 10))
	require.NoError(t, c.AddItem(a, "A", 5000, 10))
	require.NoError(t, c.AddItem(d, "D", 1500, 10))
	require.NoError(t, c.SetQuantity(b, 4, 10))
	c.RemoveItem(d)

	var wantItems int
	var wantPrice int64
	for _, li := range c.Items() {
		wantItems += li.Quantity
		wantPrice += li.UnitPrice * int64(li.Quantity)
	}
	assert.Equal(t, wantItems, c.TotalItems())
	assert.Equal(t, wantPrice, c.TotalPrice())
	assert.Equal(t, 6, c.TotalItems())
	assert.Equal(t, int64(22000), c.TotalPrice())
}

func TestItems_ReturnsCopy(t *testing.T) {
	c := New()
	id := uuid.New()
	require.NoError(t, c.AddItem(id, "A", 100, 5))

	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, c.TotalItems(), "mutating the snapshot must not touch the cart")
}

func TestStore_PerUserIsolationAndClear(t *testing.T) {
	s := NewStore()
	alice, bob := uuid.New(), uuid.New()
	p := uuid.New()

	require.NoError(t, s.Mutate(alice, func(c *Cart) error {
		return c.AddItem(p, "A", 100, 5)
	}))

	items, _, _ := s.Snapshot(bob)
	assert.Empty(t, items, "carts are scoped per user")

	s.Clear(alice)
	items, total, count := s.Snapshot(alice)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 0, count)
}

func TestStore_DispatchesApplyInOrder(t *testing.T) {
	s := NewStore()
	user := uuid.New()
	p := uuid.New()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Mutate(user, func(c *Cart) error {
			return c.AddItem(p, "A", 100, 10)
		}))
	}
	_, _, count := s.Snapshot(user)
	assert.Equal(t, 5, count, "no lost updates across dispatches")
}
