package handler

import (
	"errors"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/payment"
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	service service.CheckoutService
}

func NewCheckoutHandler(s service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

type checkoutRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Customer      payment.Customer    `json:"customer"`
}

type confirmRequest struct {
	Result service.ConfirmResult `json:"result"`
}

func checkoutError(c *fiber.Ctx, err error) error {
	var gwErr *payment.GatewayError
	var pwErr *service.PartialWriteError
	switch {
	case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrInvalidAmount):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNoPendingCheckout):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &gwErr):
		// Mirror the gateway's own status and message.
		return c.Status(gwErr.StatusCode).JSON(fiber.Map{"error": gwErr.Error()})
	case errors.As(err, &pwErr):
		return c.Status(500).JSON(fiber.Map{"error": pwErr.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}

// Checkout converts the caller's cart into a sale.
// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.PaymentMethod != model.PaymentCash && req.PaymentMethod != model.PaymentQRIS {
		return c.Status(400).JSON(fiber.Map{"error": "payment_method must be CASH or QRIS"})
	}

	result, err := h.service.Checkout(c.Context(), userID, getUserName(c), req.PaymentMethod, req.Customer)
	if err != nil {
		return checkoutError(c, err)
	}

	status := fiber.StatusCreated
	if result.Status == "pending" {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(result)
}

// ConfirmQRIS reports the payment dialog outcome for a pending checkout.
// POST /api/v1/checkout/:orderId/confirm
func (h *CheckoutHandler) ConfirmQRIS(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	var req confirmRequest
	if err := c.BodyParser(&req); err != nil || req.Result == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.ConfirmQRIS(c.Context(), orderID, req.Result)
	if err != nil {
		return checkoutError(c, err)
	}

	if result.Status == "completed" {
		return c.Status(fiber.StatusCreated).JSON(result)
	}
	return c.JSON(result)
}

// PendingIntents lists checkouts that never completed, for reconciliation.
// GET /api/v1/checkout/intents
func (h *CheckoutHandler) PendingIntents(c *fiber.Ctx) error {
	intents, err := h.service.PendingIntents()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch checkout intents"})
	}
	return c.JSON(intents)
}
