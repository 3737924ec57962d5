package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/elastic_client"
	"github.com/njiago/njiago/pkg/stats/calculator"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Snapshot struct {
	Type      string
	Stats     interface{}
	Timestamp time.Time
}

// RecordSnapshots persists the current platform totals, one document per
// section in the stats collection plus a copy into the weekly search index.
func RecordSnapshots() {
	current := &PlatformStats{
		Routes:  calculator.GetRoutes(),
		Reports: calculator.GetReports(),
		Scores:  calculator.GetScores(),

		Timestamp: time.Now(),
	}

	recordSnapshot("routes", current.Routes, current.Timestamp)
	recordSnapshot("reports", current.Reports, current.Timestamp)
	recordSnapshot("scores", current.Scores, current.Timestamp)

	indexName := elastic_client.WeeklyIndexName("platform-stats", current.Timestamp)

	snapshotBytes, err := json.Marshal(current)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal stats snapshot")
		return
	}

	elastic_client.IndexRequest(indexName, bytes.NewReader(snapshotBytes))
}

func recordSnapshot(snapshotType string, sectionStats interface{}, timestamp time.Time) {
	statsCollection := database.GetCollection("stats")

	snapshot := Snapshot{
		Type:      snapshotType,
		Stats:     sectionStats,
		Timestamp: timestamp,
	}

	opts := options.Update().SetUpsert(true)
	_, err := statsCollection.UpdateOne(context.Background(), bson.M{"type": snapshotType}, bson.M{"$set": snapshot}, opts)
	if err != nil {
		log.Error().Err(err).Str("type", snapshotType).Msg("Failed to record stats snapshot")
	}
}
