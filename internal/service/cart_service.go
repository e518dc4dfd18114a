package service

import (
	"go-pos-ws/internal/cart"
	"go-pos-ws/internal/repository"

	"github.com/google/uuid"
)

// CartView is the terminal-facing projection of one cart.
type CartView struct {
	Items      []cart.LineItem `json:"items"`
	TotalPrice int64           `json:"total_price"`
	TotalItems int             `json:"total_items"`
}

// CartService glues the in-memory cart store to the product catalog: it
// resolves the live stock the reducer needs to enforce the capacity
// invariant.
type CartService interface {
	AddItem(userID, productID uuid.UUID) (*CartView, error)
	SetQuantity(userID, productID uuid.UUID, quantity int) (*CartView, error)
	RemoveItem(userID, productID uuid.UUID) (*CartView, error)
	Clear(userID uuid.UUID) *CartView
	View(userID uuid.UUID) *CartView
}

type cartService struct {
	carts       *cart.Store
	productRepo repository.ProductRepository
}

func NewCartService(carts *cart.Store, productRepo repository.ProductRepository) CartService {
	return &cartService{carts: carts, productRepo: productRepo}
}

func (s *cartService) AddItem(userID, productID uuid.UUID) (*CartView, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, err
	}

	err = s.carts.Mutate(userID, func(c *cart.Cart) error {
		return c.AddItem(product.ID, product.Name, product.Price, product.Stock)
	})
	if err != nil {
		return nil, err
	}
	return s.View(userID), nil
}

func (s *cartService) SetQuantity(userID, productID uuid.UUID, quantity int) (*CartView, error) {
	// Quantity <= 0 removes the line without needing a catalog read.
	if quantity <= 0 {
		return s.RemoveItem(userID, productID)
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, err
	}

	err = s.carts.Mutate(userID, func(c *cart.Cart) error {
		return c.SetQuantity(productID, quantity, product.Stock)
	})
	if err != nil {
		return nil, err
	}
	return s.View(userID), nil
}

func (s *cartService) RemoveItem(userID, productID uuid.UUID) (*CartView, error) {
	err := s.carts.Mutate(userID, func(c *cart.Cart) error {
		c.RemoveItem(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.View(userID), nil
}

func (s *cartService) Clear(userID uuid.UUID) *CartView {
	s.carts.Clear(userID)
	return s.View(userID)
}

func (s *cartService) View(userID uuid.UUID) *CartView {
	items, totalPrice, totalItems := s.carts.Snapshot(userID)
	if items == nil {
		items = []cart.LineItem{}
	}
	return &CartView{Items: items, TotalPrice: totalPrice, TotalItems: totalItems}
}
