package events

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kr/pretty"
	"github.com/njiago/njiago/pkg/consumer"
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/elastic_client"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/njiago/njiago/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the events runner",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events server",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						log.Error().Err(err).Msg("Failed to connect to Elasticsearch")
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       queueName,
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewEventsBatchConsumer(),
					}
					redisConsumer.Setup()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "generate a test event",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					score := njdf.Score{
						RouteRef: "KE:ROUTE:NBO:111",

						Reliability: 4.2,
						Safety:      3.9,
						Punctuality: 4.0,
						Comfort:     3.5,
						Overall:     3.9,

						TotalReports:   27,
						LastCalculated: time.Now(),
					}

					eventsQueue, err := redis_client.QueueConnection.OpenQueue(queueName)
					if err != nil {
						log.Fatal().Err(err).Msg("Failed to start event queue")
					}

					event := njdf.Event{
						Type:      njdf.EventTypeScoreUpdated,
						Timestamp: time.Now(),
						Body:      score,
					}

					pretty.Println(event)

					eventBytes, _ := json.Marshal(event)

					eventsQueue.PublishBytes(eventBytes)

					return nil
				},
			},
		},
	}
}
