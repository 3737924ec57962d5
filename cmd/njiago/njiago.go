package main

import (
	"os"
	"time"

	"github.com/njiago/njiago/pkg/api"
	"github.com/njiago/njiago/pkg/dataimporter"
	"github.com/njiago/njiago/pkg/events"
	"github.com/njiago/njiago/pkg/stats"
	"github.com/njiago/njiago/pkg/traffic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// Peak hour windows are defined in Nairobi time
	loc, _ := time.LoadLocation("Africa/Nairobi")
	time.Local = loc

	if os.Getenv("NJIAGO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("NJIAGO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "njiago",
		Description: "Single binary of truth for Njiago - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			events.RegisterCLI(),
			traffic.RegisterCLI(),
			dataimporter.RegisterCLI(),
			stats.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
