package scoring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/njiago/njiago/pkg/njdf"
	"github.com/njiago/njiago/pkg/scoring"
)

type mockRateLimitStore struct {
	recordFn func(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error)
	upsertFn func(ctx context.Context, record *njdf.RateLimitRecord) error

	upserted []*njdf.RateLimitRecord
}

func (m *mockRateLimitStore) Record(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, routeRef, deviceFingerprint)
	}
	return nil, nil
}

func (m *mockRateLimitStore) UpsertRecord(ctx context.Context, record *njdf.RateLimitRecord) error {
	copied := *record
	m.upserted = append(m.upserted, &copied)

	if m.upsertFn != nil {
		return m.upsertFn(ctx, record)
	}
	return nil
}

func fixedTime() time.Time {
	return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
}

func newTestRateLimiter(store scoring.RateLimitStore) *scoring.RateLimiter {
	limiter := scoring.NewRateLimiter(store)
	limiter.Now = fixedTime

	return limiter
}

func TestRateLimiter_FirstRating(t *testing.T) {
	store := &mockRateLimitStore{}
	limiter := newTestRateLimiter(store)

	decision, err := limiter.CheckAndRecord(context.Background(), "KE:ROUTE:111", "device-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("expected first rating to be allowed")
	}

	if len(store.upserted) != 1 {
		t.Fatalf("expected 1 record write, got %d", len(store.upserted))
	}

	record := store.upserted[0]
	if record.Count != 1 {
		t.Errorf("expected count 1, got %d", record.Count)
	}
	if record.UserRef != "user-1" {
		t.Errorf("expected user backfilled, got %q", record.UserRef)
	}
	if !record.LastRatedAt.Equal(fixedTime()) {
		t.Errorf("expected lastRatedAt %v, got %v", fixedTime(), record.LastRatedAt)
	}
}

func TestRateLimiter_SecondRatingWithinWindow(t *testing.T) {
	store := &mockRateLimitStore{
		recordFn: func(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error) {
			return &njdf.RateLimitRecord{
				RouteRef:          routeRef,
				DeviceFingerprint: deviceFingerprint,
				Count:             1,
				LastRatedAt:       fixedTime().Add(-30 * time.Second),
			}, nil
		},
	}
	limiter := newTestRateLimiter(store)

	decision, err := limiter.CheckAndRecord(context.Background(), "KE:ROUTE:111", "device-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("expected second rating to be allowed")
	}

	record := store.upserted[0]
	if record.Count != 2 {
		t.Errorf("expected count 2, got %d", record.Count)
	}
	if !record.LastRatedAt.Equal(fixedTime()) {
		t.Errorf("expected lastRatedAt moved to %v, got %v", fixedTime(), record.LastRatedAt)
	}
}

func TestRateLimiter_ThirdRatingWithinWindowRejected(t *testing.T) {
	lastRatedAt := fixedTime().Add(-30 * time.Second)
	store := &mockRateLimitStore{
		recordFn: func(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error) {
			return &njdf.RateLimitRecord{
				RouteRef:          routeRef,
				DeviceFingerprint: deviceFingerprint,
				Count:             2,
				LastRatedAt:       lastRatedAt,
			}, nil
		},
	}
	limiter := newTestRateLimiter(store)

	decision, err := limiter.CheckAndRecord(context.Background(), "KE:ROUTE:111", "device-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Fatal("expected third rating within the window to be rejected")
	}
	if decision.RetryAfterSeconds != 90 {
		t.Errorf("expected retry after 90 seconds, got %d", decision.RetryAfterSeconds)
	}

	// A rejected attempt must not count towards the window
	if len(store.upserted) != 0 {
		t.Errorf("expected no record writes on rejection, got %d", len(store.upserted))
	}
}

func TestRateLimiter_RejectionStillBackfillsUser(t *testing.T) {
	lastRatedAt := fixedTime().Add(-time.Minute)
	store := &mockRateLimitStore{
		recordFn: func(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error) {
			return &njdf.RateLimitRecord{
				RouteRef:          routeRef,
				DeviceFingerprint: deviceFingerprint,
				Count:             2,
				LastRatedAt:       lastRatedAt,
			}, nil
		},
	}
	limiter := newTestRateLimiter(store)

	decision, err := limiter.CheckAndRecord(context.Background(), "KE:ROUTE:111", "device-1", "user-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Fatal("expected rejection")
	}

	if len(store.upserted) != 1 {
		t.Fatalf("expected the user backfill to be written, got %d writes", len(store.upserted))
	}

	record := store.upserted[0]
	if record.UserRef != "user-7" {
		t.Errorf("expected user backfilled, got %q", record.UserRef)
	}
	if record.Count != 2 {
		t.Errorf("expected count unchanged at 2, got %d", record.Count)
	}
	if !record.LastRatedAt.Equal(lastRatedAt) {
		t.Errorf("expected lastRatedAt unchanged at %v, got %v", lastRatedAt, record.LastRatedAt)
	}
}

func TestRateLimiter_WindowElapsedResetsCount(t *testing.T) {
	store := &mockRateLimitStore{
		recordFn: func(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error) {
			return &njdf.RateLimitRecord{
				RouteRef:          routeRef,
				DeviceFingerprint: deviceFingerprint,
				Count:             2,
				LastRatedAt:       fixedTime().Add(-3 * time.Minute),
			}, nil
		},
	}
	limiter := newTestRateLimiter(store)

	decision, err := limiter.CheckAndRecord(context.Background(), "KE:ROUTE:111", "device-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("expected rating after the window to be allowed")
	}

	record := store.upserted[0]
	if record.Count != 1 {
		t.Errorf("expected count reset to 1, got %d", record.Count)
	}
}

func TestRateLimiter_StoreFailuresPropagate(t *testing.T) {
	storeErr := errors.New("connection reset")

	t.Run("read failure", func(t *testing.T) {
		store := &mockRateLimitStore{
			recordFn: func(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error) {
				return nil, storeErr
			},
		}
		limiter := newTestRateLimiter(store)

		_, err := limiter.CheckAndRecord(context.Background(), "KE:ROUTE:111", "device-1", "")
		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		store := &mockRateLimitStore{
			upsertFn: func(ctx context.Context, record *njdf.RateLimitRecord) error {
				return storeErr
			},
		}
		limiter := newTestRateLimiter(store)

		_, err := limiter.CheckAndRecord(context.Background(), "KE:ROUTE:111", "device-1", "")
		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
	})
}
