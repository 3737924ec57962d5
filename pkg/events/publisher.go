package events

import (
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/njiago/njiago/pkg/redis_client"
	"github.com/rs/zerolog/log"
)

const queueName = "events-queue"

// Publisher pushes analytics events onto the events queue. Publishing is
// fire and forget, a failed publish is logged and dropped.
type Publisher struct {
	queue rmq.Queue
}

func NewPublisher() *Publisher {
	eventsQueue, err := redis_client.QueueConnection.OpenQueue(queueName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start event queue")
	}

	return &Publisher{
		queue: eventsQueue,
	}
}

func (p *Publisher) Publish(eventType njdf.EventType, body interface{}) {
	eventBytes, _ := json.Marshal(njdf.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Body:      body,
	})

	if err := p.queue.PublishBytes(eventBytes); err != nil {
		log.Error().Err(err).Str("type", string(eventType)).Msg("Failed to publish event")
	}
}
