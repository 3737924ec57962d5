package routes

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

func RoutesRouter(router fiber.Router) {
	router.Get("/", listRoutes)
	router.Get("/:identifier", getRoute)
	router.Get("/:identifier/reports", listRouteReports)

	router.Post("/:identifier/ratings", submitRating)
	router.Get("/:identifier/insights", getRouteInsights)
}

func listRoutes(c *fiber.Ctx) error {
	query := bson.M{}

	if activeQuery := c.Query("active", ""); activeQuery != "" {
		query["active"] = activeQuery == "true"
	}
	if saccoName := c.Query("sacco", ""); saccoName != "" {
		query["sacconame"] = saccoName
	}

	routes := []njdf.Route{}

	routesCollection := database.GetCollection("routes")
	cursor, _ := routesCollection.Find(context.Background(), query)

	for cursor.Next(context.TODO()) {
		var route *njdf.Route
		err := cursor.Decode(&route)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Route")
			continue
		}

		routes = append(routes, *route)
	}

	routesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, routes)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce routes",
		})
	}

	return c.JSON(routesReduced)
}

func getRoute(c *fiber.Ctx) error {
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

	routeReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, route)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce Route",
		})
	}

	return c.JSON(routeReduced)
}

func listRouteReports(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter days should be a positive integer",
		})
	}

	reportType := njdf.ReportType(c.Query("type", ""))
	if reportType != "" && !njdf.KnownReportType(reportType) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Unknown report type",
		})
	}

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

	since := time.Now().AddDate(0, 0, -days)

	reports, err := deps.Reports.RecentByRoute(c.Context(), route.PrimaryIdentifier, since, reportType)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to query reports",
		})
	}

	reportsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, reports)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce reports",
		})
	}

	return c.JSON(reportsReduced)
}
