package handler

import (
	"errors"

	"go-pos-ws/internal/cart"
	"go-pos-ws/internal/repository"
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, cart.ErrInsufficientStock):
		return c.Status(400).JSON(fiber.Map{"error": "Insufficient stock remaining"})
	case errors.Is(err, cart.ErrItemNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Item not in cart"})
	case errors.Is(err, repository.ErrProductNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

// GetCart returns the caller's current cart.
// GET /api/v1/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(h.service.View(userID))
}

// AddItem adds one unit of a product to the cart.
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == uuid.Nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	view, err := h.service.AddItem(userID, req.ProductID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(view)
}

// SetQuantity replaces a line's quantity; 0 removes the line.
// PUT /api/v1/cart/items/:productId
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	view, err := h.service.SetQuantity(userID, productID, req.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(view)
}

// RemoveItem deletes a line item.
// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	view, err := h.service.RemoveItem(userID, productID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(view)
}

// Clear empties the cart.
// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(h.service.Clear(userID))
}
