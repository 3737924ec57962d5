package seedrecords

import (
	"context"

	"github.com/njiago/njiago/pkg/database"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeedRecord is one yaml document: the collection to write to, the fields
// identifying the target document and the data to set on it.
type SeedRecord struct {
	Collection string                 `yaml:"Collection"`
	Match      map[string]string      `yaml:"Match"`
	Data       map[string]interface{} `yaml:"Data"`
}

func (s *SeedRecord) Upsert() {
	collection := database.GetCollection(s.Collection)

	query, err := bson.Marshal(s.Match)
	if err != nil {
		log.Error().Err(err).Msg("Seed record match marshal")
		return
	}

	opts := options.Update().SetUpsert(true)
	if _, err := collection.UpdateOne(context.Background(), query, bson.M{"$set": s.Data}, opts); err != nil {
		log.Error().Err(err).Msg("Seed record update")
		return
	}
}
