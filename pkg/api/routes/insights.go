package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/njiago/njiago/pkg/insights"
)

func InsightsRouter(router fiber.Router) {
	router.Get("/top", getTopRouteInsights)
}

func getRouteInsights(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	days, err := strconv.Atoi(c.Query("days", "0"))
	if err != nil || days < 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter days should be a positive integer",
		})
	}

	routeInsights, err := deps.Insights.RouteInsights(c.Context(), identifier, days)

	if errors.Is(err, insights.ErrUnknownRoute) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Route matching Route Identifier",
		})
	}
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to generate route insights",
		})
	}

	return c.JSON(routeInsights)
}

func getTopRouteInsights(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "3"))
	if err != nil || limit <= 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter limit should be a positive integer",
		})
	}

	days, err := strconv.Atoi(c.Query("days", "0"))
	if err != nil || days < 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter days should be a positive integer",
		})
	}

	return c.JSON(deps.Insights.TopRouteInsights(c.Context(), limit, days))
}
