package handler

import (
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetRevenueSummary returns today's vs all-time revenue, derived from
// the revenue ledger.
// GET /api/v1/dashboard/revenue
func (h *DashboardHandler) GetRevenueSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetRevenueSummary()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch revenue summary"})
	}
	return c.JSON(summary)
}

// GetStoreStats returns the running totals for the caller's store.
// GET /api/v1/dashboard/store-stats
func (h *DashboardHandler) GetStoreStats(c *fiber.Ctx) error {
	storeID := getStoreID(c)
	if storeID == "" {
		return c.Status(404).JSON(fiber.Map{"error": "No store assigned"})
	}

	stats, err := h.service.GetStoreStats(storeID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "No stats for store"})
	}
	return c.JSON(stats)
}

// GetSales lists completed sales, newest first.
// GET /api/v1/sales
func (h *DashboardHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GetSale returns one sale with its line items.
// GET /api/v1/sales/:id
func (h *DashboardHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSaleByID(saleID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale)
}
