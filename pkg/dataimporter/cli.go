package dataimporter

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/njiago/njiago/pkg/dataimporter/formats"
	"github.com/njiago/njiago/pkg/dataimporter/formats/routescsv"
	"github.com/njiago/njiago/pkg/dataimporter/seedrecords"
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Load route catalogs and seed records into the database",
		Subcommands: []*cli.Command{
			{
				Name:      "file",
				Usage:     "Import a local or remote file",
				ArgsUsage: "<source>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "format",
						Usage:    "Format of the file (routes-csv)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Expression deciding which rows to import, eg. 'sacco == \"Super Metro\"'",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Name of the organization the file came from",
						Value: "manual",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					source := c.Args().First()
					if source == "" {
						return errors.New("a source file or url must be given")
					}

					formatName := c.String("format")

					var format formats.Format
					switch formatName {
					case "routes-csv":
						routesFormat := &routescsv.RoutesCSV{}

						if filterExpression := c.String("filter"); filterExpression != "" {
							if err := routesFormat.SetFilter(filterExpression); err != nil {
								return err
							}
						}

						format = routesFormat
					default:
						return fmt.Errorf("unrecognized format %s", formatName)
					}

					path := source
					if isValidURL(source) {
						tempFile, err := tempDownloadFile(source)
						if err != nil {
							return err
						}

						path = tempFile.Name()
						defer os.Remove(tempFile.Name())
					}

					file, err := os.Open(path)
					if err != nil {
						return err
					}
					defer file.Close()

					if err := format.ParseFile(file); err != nil {
						return err
					}

					return format.Import(&njdf.DataSource{
						OriginalFormat: formatName,
						Provider:       c.String("provider"),
						Dataset:        source,
						Identifier:     fmt.Sprintf("%d", time.Now().Unix()),
					})
				},
			},
			{
				Name:  "seed-records",
				Usage: "Upsert the static seed records into the database",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					seedrecords.Insert()

					return nil
				},
			},
		},
	}
}
