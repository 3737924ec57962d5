package scoring

import (
	"context"

	"github.com/njiago/njiago/pkg/njdf"
)

// Service runs a rating submission through the rate limiter and score
// aggregator while holding the route's lock, then emits analytics events.
type Service struct {
	RateLimiter *RateLimiter
	Aggregator  *Aggregator
	Events      EventPublisher

	locks *routeLocks
}

type SubmitResult struct {
	Decision Decision
	Score    *njdf.Score
}

func NewService(rateLimiter *RateLimiter, aggregator *Aggregator, events EventPublisher) *Service {
	return &Service{
		RateLimiter: rateLimiter,
		Aggregator:  aggregator,
		Events:      events,

		locks: newRouteLocks(),
	}
}

func (s *Service) SubmitRating(ctx context.Context, routeRef string, rating njdf.Rating, deviceFingerprint string, userRef string) (SubmitResult, error) {
	// Reject malformed input before it burns a rate limit slot
	if err := rating.Validate(); err != nil {
		return SubmitResult{}, err
	}

	lock := s.locks.Lock(routeRef)
	defer lock.Unlock()

	decision, err := s.RateLimiter.CheckAndRecord(ctx, routeRef, deviceFingerprint, userRef)
	if err != nil {
		return SubmitResult{}, err
	}

	if !decision.Allowed {
		s.publish(njdf.EventTypeRatingRejected, map[string]interface{}{
			"routeRef":          routeRef,
			"retryAfterSeconds": decision.RetryAfterSeconds,
		})

		return SubmitResult{Decision: decision}, nil
	}

	score, err := s.Aggregator.ApplyRating(ctx, routeRef, rating)
	if err != nil {
		return SubmitResult{}, err
	}

	s.publish(njdf.EventTypeRatingAccepted, map[string]interface{}{
		"routeRef": routeRef,
		"rating":   rating,
	})
	s.publish(njdf.EventTypeScoreUpdated, score)

	return SubmitResult{
		Decision: decision,
		Score:    score,
	}, nil
}

func (s *Service) publish(eventType njdf.EventType, body interface{}) {
	if s.Events == nil {
		return
	}

	s.Events.Publish(eventType, body)
}
