package scoring

import (
	"context"
	"math"
	"time"

	"github.com/njiago/njiago/pkg/njdf"
)

const RatingWindow = 2 * time.Minute
const RatingWindowMaxCount = 2

// Decision is the outcome of a rate limit check. RetryAfterSeconds is only
// set when the rating was not allowed.
type Decision struct {
	Allowed           bool
	RetryAfterSeconds int
}

// RateLimiter counts accepted ratings per route and device fingerprint
// within a rolling window. Records are never deleted, an expired window
// resets the count back to 1 on the next attempt.
type RateLimiter struct {
	Store RateLimitStore
	Now   func() time.Time
}

func NewRateLimiter(store RateLimitStore) *RateLimiter {
	return &RateLimiter{
		Store: store,
		Now:   time.Now,
	}
}

func (r *RateLimiter) CheckAndRecord(ctx context.Context, routeRef string, deviceFingerprint string, userRef string) (Decision, error) {
	now := r.Now()

	record, err := r.Store.Record(ctx, routeRef, deviceFingerprint)
	if err != nil {
		return Decision{}, err
	}

	if record == nil {
		record = &njdf.RateLimitRecord{
			RouteRef:          routeRef,
			DeviceFingerprint: deviceFingerprint,
			UserRef:           userRef,
			Count:             1,
			LastRatedAt:       now,
		}

		if err := r.Store.UpsertRecord(ctx, record); err != nil {
			return Decision{}, err
		}

		return Decision{Allowed: true}, nil
	}

	// An anonymous record picks up the user once they authenticate from the
	// same device
	backfilledUser := false
	if userRef != "" && record.UserRef == "" {
		record.UserRef = userRef
		backfilledUser = true
	}

	elapsed := now.Sub(record.LastRatedAt)

	if elapsed <= RatingWindow {
		if record.Count >= RatingWindowMaxCount {
			if backfilledUser {
				if err := r.Store.UpsertRecord(ctx, record); err != nil {
					return Decision{}, err
				}
			}

			return Decision{
				Allowed:           false,
				RetryAfterSeconds: int(math.Ceil((RatingWindow - elapsed).Seconds())),
			}, nil
		}

		record.Count = record.Count + 1
	} else {
		record.Count = 1
	}

	record.LastRatedAt = now

	if err := r.Store.UpsertRecord(ctx, record); err != nil {
		return Decision{}, err
	}

	return Decision{Allowed: true}, nil
}
