package scoring_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/njiago/njiago/pkg/njdf"
	"github.com/njiago/njiago/pkg/scoring"
)

type mockScoreStore struct {
	scoreFn  func(ctx context.Context, routeRef string) (*njdf.Score, error)
	upsertFn func(ctx context.Context, score *njdf.Score) error
}

func (m *mockScoreStore) Score(ctx context.Context, routeRef string) (*njdf.Score, error) {
	if m.scoreFn != nil {
		return m.scoreFn(ctx, routeRef)
	}
	return nil, nil
}

func (m *mockScoreStore) UpsertScore(ctx context.Context, score *njdf.Score) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, score)
	}
	return nil
}

// memoryScoreStore round-trips scores through copies the way a database
// decode would
type memoryScoreStore struct {
	score *njdf.Score
}

func (m *memoryScoreStore) Score(ctx context.Context, routeRef string) (*njdf.Score, error) {
	if m.score == nil {
		return nil, nil
	}

	copied := *m.score
	return &copied, nil
}

func (m *memoryScoreStore) UpsertScore(ctx context.Context, score *njdf.Score) error {
	copied := *score
	m.score = &copied

	return nil
}

func ratingValue(value float64) *float64 {
	return &value
}

func scoreAlmostEqual(a float64, b float64) bool {
	return math.Abs(a-b) <= 0.0001
}

func TestAggregator_FirstRatingOverallOnly(t *testing.T) {
	aggregator := scoring.NewAggregator(&memoryScoreStore{})

	score, err := aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", njdf.Rating{Overall: ratingValue(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, value := range map[string]float64{
		"reliability": score.Reliability,
		"safety":      score.Safety,
		"punctuality": score.Punctuality,
		"comfort":     score.Comfort,
		"overall":     score.Overall,
	} {
		if !scoreAlmostEqual(value, 4) {
			t.Errorf("expected %s 4, got %.2f", name, value)
		}
	}

	if score.TotalReports != 1 {
		t.Errorf("expected totalReports 1, got %d", score.TotalReports)
	}
}

func TestAggregator_FirstRatingSingleDimension(t *testing.T) {
	aggregator := scoring.NewAggregator(&memoryScoreStore{})

	score, err := aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", njdf.Rating{Reliability: ratingValue(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !scoreAlmostEqual(score.Reliability, 5) {
		t.Errorf("expected reliability 5, got %.2f", score.Reliability)
	}
	for name, value := range map[string]float64{
		"safety":      score.Safety,
		"punctuality": score.Punctuality,
		"comfort":     score.Comfort,
	} {
		if !scoreAlmostEqual(value, 3) {
			t.Errorf("expected %s to default to 3, got %.2f", name, value)
		}
	}

	// Overall is the mean of 5, 3, 3, 3
	if !scoreAlmostEqual(score.Overall, 3.5) {
		t.Errorf("expected overall 3.5, got %.2f", score.Overall)
	}
}

func TestAggregator_IncrementalMean(t *testing.T) {
	store := &memoryScoreStore{
		score: &njdf.Score{
			RouteRef:     "KE:ROUTE:111",
			Reliability:  3,
			Safety:       3,
			Punctuality:  3,
			Comfort:      3,
			Overall:      3,
			TotalReports: 1,
		},
	}
	aggregator := scoring.NewAggregator(store)

	score, err := aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", njdf.Rating{Overall: ratingValue(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Straight mean of 3 and 5
	if !scoreAlmostEqual(score.Overall, 4) {
		t.Errorf("expected overall 4, got %.2f", score.Overall)
	}
	if score.TotalReports != 2 {
		t.Errorf("expected totalReports 2, got %d", score.TotalReports)
	}
}

func TestAggregator_MissingDimensionsLeftUnchanged(t *testing.T) {
	store := &memoryScoreStore{
		score: &njdf.Score{
			RouteRef:     "KE:ROUTE:111",
			Reliability:  3,
			Safety:       3,
			Punctuality:  3,
			Comfort:      3,
			Overall:      3,
			TotalReports: 1,
		},
	}
	aggregator := scoring.NewAggregator(store)

	score, err := aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", njdf.Rating{Reliability: ratingValue(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !scoreAlmostEqual(score.Reliability, 4) {
		t.Errorf("expected reliability 4, got %.2f", score.Reliability)
	}
	for name, value := range map[string]float64{
		"safety":      score.Safety,
		"punctuality": score.Punctuality,
		"comfort":     score.Comfort,
	} {
		if !scoreAlmostEqual(value, 3) {
			t.Errorf("expected %s unchanged at 3, got %.2f", name, value)
		}
	}

	// Overall recomputed from the updated dimensions: mean of 4, 3, 3, 3
	if !scoreAlmostEqual(score.Overall, 3.25) {
		t.Errorf("expected overall 3.25, got %.2f", score.Overall)
	}
}

func TestAggregator_RatingSequenceKeepsInvariants(t *testing.T) {
	store := &memoryScoreStore{}
	aggregator := scoring.NewAggregator(store)

	ratings := []njdf.Rating{
		{Overall: ratingValue(5)},
		{Reliability: ratingValue(2), Safety: ratingValue(4)},
		{Overall: ratingValue(0)},
		{Comfort: ratingValue(5), Overall: ratingValue(3)},
		{Punctuality: ratingValue(1)},
	}

	var score *njdf.Score
	for i, rating := range ratings {
		var err error
		score, err = aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", rating)
		if err != nil {
			t.Fatalf("rating %d: unexpected error: %v", i, err)
		}
	}

	if score.TotalReports != int64(len(ratings)) {
		t.Errorf("expected totalReports %d, got %d", len(ratings), score.TotalReports)
	}

	for name, value := range map[string]float64{
		"reliability": score.Reliability,
		"safety":      score.Safety,
		"punctuality": score.Punctuality,
		"comfort":     score.Comfort,
		"overall":     score.Overall,
	} {
		if value < njdf.RatingMin || value > njdf.RatingMax {
			t.Errorf("%s escaped the valid range: %.2f", name, value)
		}
	}
}

func TestAggregator_Validation(t *testing.T) {
	tests := []struct {
		name   string
		rating njdf.Rating
	}{
		{"no dimensions provided", njdf.Rating{}},
		{"value above range", njdf.Rating{Overall: ratingValue(5.5)}},
		{"value below range", njdf.Rating{Safety: ratingValue(-1)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			aggregator := scoring.NewAggregator(&memoryScoreStore{})

			_, err := aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", test.rating)

			var validationErr *njdf.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestAggregator_StoreFailuresPropagate(t *testing.T) {
	storeErr := errors.New("connection reset")

	t.Run("read failure", func(t *testing.T) {
		store := &mockScoreStore{
			scoreFn: func(ctx context.Context, routeRef string) (*njdf.Score, error) {
				return nil, storeErr
			},
		}
		aggregator := scoring.NewAggregator(store)

		_, err := aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", njdf.Rating{Overall: ratingValue(4)})
		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		store := &mockScoreStore{
			upsertFn: func(ctx context.Context, score *njdf.Score) error {
				return storeErr
			},
		}
		aggregator := scoring.NewAggregator(store)

		_, err := aggregator.ApplyRating(context.Background(), "KE:ROUTE:111", njdf.Rating{Overall: ratingValue(4)})
		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
	})
}
