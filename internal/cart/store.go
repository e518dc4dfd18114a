package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds one in-memory cart per cashier session. Carts are never
// persisted; they live for the duration of the process and are dropped
// on clear or restart. The mutex serializes access so that dispatches
// from concurrent requests of the same terminal apply in order with no
// lost updates.
type Store struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns the cart for a user, creating an empty one on first use.
func (s *Store) Get(userID uuid.UUID) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

// Mutate runs fn against the user's cart while holding the store lock.
// All reducer dispatches go through here.
func (s *Store) Mutate(userID uuid.UUID, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return fn(c)
}

// Snapshot returns a copy of the user's current line items plus derived
// totals, without exposing the live cart.
func (s *Store) Snapshot(userID uuid.UUID) (items []LineItem, totalPrice int64, totalItems int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, 0, 0
	}
	return c.Items(), c.TotalPrice(), c.TotalItems()
}

// Clear empties the user's cart.
func (s *Store) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		c.Clear()
	}
}
