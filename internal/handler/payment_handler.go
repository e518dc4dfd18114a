package handler

import (
	"errors"
	"log"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/payment"
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	gateway payment.Gateway
	webhook service.WebhookService
}

func NewPaymentHandler(gateway payment.Gateway, webhook service.WebhookService) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, webhook: webhook}
}

type createTransactionRequest struct {
	OrderID     string           `json:"orderId"`
	GrossAmount int64            `json:"grossAmount"`
	Customer    payment.Customer `json:"customer"`
}

// CreateTransaction obtains a payment-session token from the gateway.
// POST /create-transaction
func (h *PaymentHandler) CreateTransaction(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.OrderID == "" || req.GrossAmount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "orderId and a positive grossAmount are required"})
	}

	session, err := h.gateway.CreateTransaction(c.Context(), req.OrderID, req.GrossAmount, req.Customer)
	if err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			// Surface the gateway's own message and status.
			return c.Status(gwErr.StatusCode).JSON(fiber.Map{"error": gwErr.Error()})
		}
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(session)
}

// Notification receives the gateway's asynchronous payment-status
// webhook. Unverified payloads are rejected and never acted upon.
// POST /api/midtrans/notification
func (h *PaymentHandler) Notification(c *fiber.Ctx) error {
	var n model.PaymentNotification
	if err := c.BodyParser(&n); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.webhook.Process(c.Context(), &n); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			log.Printf("webhook %s: signature mismatch, rejecting", n.OrderID)
			return c.Status(403).JSON(fiber.Map{"error": "Invalid signature"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to process notification"})
	}

	return c.JSON(fiber.Map{"message": "OK"})
}
