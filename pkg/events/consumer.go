package events

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/elastic_client"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventsBatchConsumer drains the events queue into the analytics_events
// collection and the weekly Elasticsearch index.
type EventsBatchConsumer struct {
}

func NewEventsBatchConsumer() *EventsBatchConsumer {
	return &EventsBatchConsumer{}
}

func (consumer *EventsBatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	eventsIndexName := elastic_client.WeeklyIndexName("analytics-events", time.Now())

	var insertOperations []mongo.WriteModel

	for _, payload := range payloads {
		var event njdf.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		insertModel := mongo.NewInsertOneModel()
		insertModel.SetDocument(event)
		insertOperations = append(insertOperations, insertModel)

		elastic_client.IndexRequest(eventsIndexName, bytes.NewReader([]byte(payload)))
	}

	if len(insertOperations) > 0 {
		analyticsEventsCollection := database.GetCollection("analytics_events")

		startTime := time.Now()
		_, err := analyticsEventsCollection.BulkWrite(context.Background(), insertOperations, &options.BulkWriteOptions{})
		log.Info().Int("Length", len(insertOperations)).Str("Time", time.Since(startTime).String()).Msg("Bulk write analytics events")

		if err != nil {
			log.Error().Err(err).Msg("Failed to bulk write analytics events")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume event")
		}
	}
}
