package scoring

import (
	"context"
	"time"

	"github.com/njiago/njiago/pkg/njdf"
)

// Ratings with no explicit value start every dimension at the midpoint
const neutralScore = 3.0

// Aggregator folds partial ratings into a route's running score as a
// streaming weighted mean. Dimensions missing from a rating fall back to the
// rating's overall value; if that is also missing the dimension keeps its
// previous weight, which makes the per-dimension weighting an accepted
// approximation when callers rate dimensions inconsistently.
type Aggregator struct {
	Store ScoreStore
	Now   func() time.Time
}

func NewAggregator(store ScoreStore) *Aggregator {
	return &Aggregator{
		Store: store,
		Now:   time.Now,
	}
}

func (a *Aggregator) ApplyRating(ctx context.Context, routeRef string, rating njdf.Rating) (*njdf.Score, error) {
	if err := rating.Validate(); err != nil {
		return nil, err
	}

	score, err := a.Store.Score(ctx, routeRef)
	if err != nil {
		return nil, err
	}

	if score == nil {
		score = firstScore(routeRef, rating)
	} else {
		mergeRating(score, rating)
	}

	score.LastCalculated = a.Now()

	if err := a.Store.UpsertScore(ctx, score); err != nil {
		return nil, err
	}

	return score, nil
}

func firstScore(routeRef string, rating njdf.Rating) *njdf.Score {
	score := &njdf.Score{
		RouteRef:     routeRef,
		TotalReports: 1,
	}

	for _, dimension := range scoreDimensions(score, rating) {
		value := neutralScore
		if dimension.provided != nil {
			value = *dimension.provided
		} else if rating.Overall != nil {
			value = *rating.Overall
		}

		*dimension.current = njdf.ClampScore(value)
	}

	if rating.Overall != nil {
		score.Overall = njdf.ClampScore(*rating.Overall)
	} else {
		score.Overall = njdf.ClampScore(subDimensionMean(score))
	}

	return score
}

func mergeRating(score *njdf.Score, rating njdf.Rating) {
	n := float64(score.TotalReports)

	for _, dimension := range scoreDimensions(score, rating) {
		incoming := rating.Overall
		if dimension.provided != nil {
			incoming = dimension.provided
		}

		if incoming == nil {
			continue
		}

		*dimension.current = njdf.ClampScore((*dimension.current*n + *incoming) / (n + 1))
	}

	if rating.Overall != nil {
		score.Overall = njdf.ClampScore((score.Overall*n + *rating.Overall) / (n + 1))
	} else {
		score.Overall = njdf.ClampScore(subDimensionMean(score))
	}

	score.TotalReports = score.TotalReports + 1
}

type scoreDimension struct {
	current  *float64
	provided *float64
}

func scoreDimensions(score *njdf.Score, rating njdf.Rating) []scoreDimension {
	return []scoreDimension{
		{&score.Reliability, rating.Reliability},
		{&score.Safety, rating.Safety},
		{&score.Punctuality, rating.Punctuality},
		{&score.Comfort, rating.Comfort},
	}
}

func subDimensionMean(score *njdf.Score) float64 {
	return (score.Reliability + score.Safety + score.Punctuality + score.Comfort) / 4
}
