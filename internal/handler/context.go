package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull the caller identity set by the auth middleware.

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, fiber.NewError(401, "Unauthorized")
	}
	return uuid.Parse(raw.(string))
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func getStoreID(c *fiber.Ctx) string {
	storeID := c.Locals("store_id")
	if storeID == nil {
		return ""
	}
	return storeID.(string)
}
