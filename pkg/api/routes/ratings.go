package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/njiago/njiago/pkg/njdf"
)

func submitRating(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	route, err := deps.Routes.Route(c.Context(), identifier)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to query routes",
		})
	}

	if route == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Route matching Route Identifier",
		})
	}

	var rating njdf.Rating
	if err := c.BodyParser(&rating); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Could not parse rating body",
		})
	}

	result, err := deps.Ratings.SubmitRating(c.Context(), route.PrimaryIdentifier, rating, DeviceFingerprint(c), c.Get("X-User-Ref", ""))

	var validationError *njdf.ValidationError
	if errors.As(err, &validationError) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": validationError.Error(),
		})
	}
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to submit rating",
		})
	}

	if !result.Decision.Allowed {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(result.Decision.RetryAfterSeconds))
		c.SendStatus(fiber.StatusTooManyRequests)
		return c.JSON(fiber.Map{
			"status":            "rate_limited",
			"retryAfterSeconds": result.Decision.RetryAfterSeconds,
		})
	}

	scoreReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, result.Score)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce Score",
		})
	}

	return c.JSON(fiber.Map{
		"status": "accepted",
		"score":  scoreReduced,
	})
}
