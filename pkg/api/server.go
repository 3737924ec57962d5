package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njiago/njiago/pkg/api/routes"
)

// CreateServer builds the web app without binding it, so tests can drive it
// through fiber's Test helper.
func CreateServer() *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	group.Get("stats", routes.Stats)

	routes.RoutesRouter(group.Group("/routes"))
	routes.InsightsRouter(group.Group("/insights"))
	routes.TrafficRouter(group.Group("/traffic"))
	routes.ReportsRouter(group.Group("/reports"))

	return webApp
}

func SetupServer(listen string) error {
	return CreateServer().Listen(listen)
}
