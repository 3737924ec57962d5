package routes

import (
	"github.com/gofiber/fiber/v2"
)

func TrafficRouter(router fiber.Router) {
	router.Get("/", listTrafficStatuses)
	router.Post("/refresh", refreshTraffic)
}

func listTrafficStatuses(c *fiber.Ctx) error {
	statuses, err := deps.TrafficStatuses.All(c.Context())
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to query traffic statuses",
		})
	}

	return c.JSON(statuses)
}

func refreshTraffic(c *fiber.Ctx) error {
	updatedCount, err := deps.Traffic.RefreshAll(c.Context())
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Traffic refresh failed",
		})
	}

	return c.JSON(fiber.Map{
		"updatedCount": updatedCount,
	})
}
