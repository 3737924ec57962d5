package seedrecords

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Insert walks the seed-records directory and upserts every definition in it.
// Seed records hold the hand-curated documents the platform needs before any
// crowd data arrives.
func Insert() {
	err := filepath.Walk("data/seed-records/",
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading seed-record file")

			seedYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(seedYaml))

			for {
				var record SeedRecord
				if decoder.Decode(&record) != nil {
					break
				}

				record.Upsert()
			}

			return nil
		})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seed-records directory")
	}
}
