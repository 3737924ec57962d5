package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njiago/njiago/pkg/stats"
)

func Stats(c *fiber.Ctx) error {
	return c.JSON(stats.CurrentPlatformStats())
}
