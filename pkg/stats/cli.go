package stats

import (
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/elastic_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Platform statistic snapshots",
		Subcommands: []*cli.Command{
			{
				Name:  "snapshot",
				Usage: "record the current platform totals",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						log.Error().Err(err).Msg("Failed to connect to Elasticsearch")
					}

					RecordSnapshots()

					elastic_client.WaitUntilQueueEmpty()

					return nil
				},
			},
		},
	}
}
