package traffic

import (
	"context"
	"time"

	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/events"
	"github.com/njiago/njiago/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "traffic",
		Usage: "Resolve congestion factors for the route catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "refresh",
				Usage: "resolve and cache the traffic status of every active route",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "repeat-every",
						Usage: "rerun the refresh on an interval instead of once",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					config, err := LoadConfig()
					if err != nil {
						return err
					}

					refresher := NewRefresher(config)

					interval := c.Duration("repeat-every")
					if interval == 0 {
						_, err := refresher.RefreshAll(context.Background())
						return err
					}

					for {
						startTime := time.Now()

						if _, err := refresher.RefreshAll(context.Background()); err != nil {
							log.Error().Err(err).Msg("Traffic refresh failed")
						}

						executionDuration := time.Since(startTime)
						waitTime := interval - executionDuration

						if waitTime.Seconds() > 0 {
							time.Sleep(waitTime)
						}
					}
				},
			},
		},
	}
}

// NewRefresher wires a refresher against the shared database, Redis and the
// events queue.
func NewRefresher(config Config) *Refresher {
	var provider FlowProvider
	if config.Provider.Configured() {
		provider = NewProviderClient(config.Provider)
	}

	trafficCache := &Cache{}
	trafficCache.Setup(config.CacheExpiryDuration())

	return &Refresher{
		Resolver: NewResolver(config, provider, MongoStore{}),
		Cache:    trafficCache,
		Routes:   MongoStore{},
		Events:   events.NewPublisher(),
	}
}
