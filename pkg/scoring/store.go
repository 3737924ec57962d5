package scoring

import (
	"context"

	"github.com/njiago/njiago/pkg/njdf"
)

type ScoreStore interface {
	Score(ctx context.Context, routeRef string) (*njdf.Score, error)
	UpsertScore(ctx context.Context, score *njdf.Score) error
}

type RateLimitStore interface {
	Record(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error)
	UpsertRecord(ctx context.Context, record *njdf.RateLimitRecord) error
}

// EventPublisher pushes analytics events onto the events queue. Publishing
// is fire and forget, failures must not affect the rating outcome.
type EventPublisher interface {
	Publish(eventType njdf.EventType, body interface{})
}
