package api

import (
	"github.com/njiago/njiago/pkg/api/routes"
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/events"
	"github.com/njiago/njiago/pkg/insights"
	"github.com/njiago/njiago/pkg/redis_client"
	"github.com/njiago/njiago/pkg/scoring"
	"github.com/njiago/njiago/pkg/stats"
	"github.com/njiago/njiago/pkg/traffic"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					trafficConfig, err := traffic.LoadConfig()
					if err != nil {
						return err
					}
					refresher := traffic.NewRefresher(trafficConfig)

					eventsPublisher := events.NewPublisher()

					scoringStore := scoring.MongoStore{}
					ratingService := scoring.NewService(
						scoring.NewRateLimiter(scoringStore),
						scoring.NewAggregator(scoringStore),
						eventsPublisher,
					)

					insightsStore := insights.MongoStore{}
					insightsEngine := insights.NewEngine(
						insights.DefaultConfig(),
						insightsStore,
						insightsStore,
						insightsStore,
						refresher.Cache,
					)

					routes.Setup(routes.Dependencies{
						Ratings:  ratingService,
						Insights: insightsEngine,
						Routes:   insightsStore,
						Reports:  routes.MongoReportStore{},

						TrafficStatuses: refresher.Cache,
						Traffic:         refresher,

						Events: eventsPublisher,
					})

					go stats.UpdatePlatformStats()

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
