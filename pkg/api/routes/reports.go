package routes

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/liip/sheriff"
	"github.com/njiago/njiago/pkg/njdf"
)

var reportValidator = validator.New()

type createReportBody struct {
	RouteRef   string `json:"routeRef" validate:"required"`
	ReportType string `json:"reportType" validate:"required"`
	Severity   string `json:"severity" validate:"required"`

	Description string  `json:"description" validate:"max=500"`
	Fare        float64 `json:"fare" validate:"omitempty,gte=0"`

	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
}

func ReportsRouter(router fiber.Router) {
	router.Post("/", createReport)
}

func createReport(c *fiber.Ctx) error {
	var body createReportBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Could not parse report body",
		})
	}

	if err := reportValidator.Struct(body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if !njdf.KnownReportType(njdf.ReportType(body.ReportType)) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Unknown report type",
		})
	}
	if !njdf.KnownReportSeverity(njdf.ReportSeverity(body.Severity)) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Unknown report severity",
		})
	}

	route, err := deps.Routes.Route(c.Context(), body.RouteRef)
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

	report := &njdf.Report{
		PrimaryIdentifier: fmt.Sprintf("KE:REPORT:%s", uuid.New().String()),
		RouteRef:          route.PrimaryIdentifier,

		ReportType: njdf.ReportType(body.ReportType),
		Severity:   njdf.ReportSeverity(body.Severity),

		Description: body.Description,
		Fare:        body.Fare,

		DeviceFingerprint: DeviceFingerprint(c),
		UserRef:           c.Get("X-User-Ref", ""),

		CreatedAt: time.Now(),
	}

	if body.Longitude != nil && body.Latitude != nil {
		report.Location = &njdf.Location{
			Type:        "Point",
			Coordinates: []float64{*body.Longitude, *body.Latitude},
		}
	}

	if err := deps.Reports.Insert(c.Context(), report); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to record report",
		})
	}

	if deps.Events != nil {
		deps.Events.Publish(njdf.EventTypeReportCreated, report)
	}

	reportReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, report)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce Report",
		})
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"status": "created",
		"report": reportReduced,
	})
}
