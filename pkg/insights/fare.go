package insights

import (
	"math"
	"time"

	"github.com/njiago/njiago/pkg/njdf"
)

// Variance is held as a population standard deviation over the observed
// fares, kept under this name for continuity with the dashboards.
type FarePrediction struct {
	PredictedFare float64 `json:"predictedFare"`
	AverageFare   float64 `json:"averageFare"`
	Multiplier    float64 `json:"multiplier"`
	Variance      float64 `json:"variance"`
	Confidence    float64 `json:"confidence"`
	Trend         string  `json:"trend"`
	Samples       int     `json:"samples"`
}

const (
	FareTrendIncreasing = "increasing"
	FareTrendDecreasing = "decreasing"
	FareTrendStable     = "stable"
)

// Fallback spread when there are too few samples to measure one
const defaultFareVariance = 5.0

// PredictFare estimates what a rider will pay on a route right now from
// fares observed in recent reports. samples must be in chronological order.
func PredictFare(route *njdf.Route, samples []*njdf.Report, at time.Time) FarePrediction {
	var fares []float64
	for _, report := range samples {
		if report.Fare > 0 {
			fares = append(fares, report.Fare)
		}
	}

	averageFare := route.Fare
	if len(fares) > 0 {
		averageFare = mean(fares)
	}

	multiplier := fareMultiplier(at.Hour())

	variance := defaultFareVariance
	if len(fares) >= 2 {
		variance = populationStdDev(fares)
	}

	confidence := math.Min(0.95, 0.6+float64(len(fares))/20)

	trend := FareTrendStable
	if len(fares) > 3 {
		first := fares[0]
		last := fares[len(fares)-1]

		if last > first {
			trend = FareTrendIncreasing
		} else if last < first {
			trend = FareTrendDecreasing
		}
	}

	return FarePrediction{
		PredictedFare: math.Round(averageFare * multiplier),
		AverageFare:   averageFare,
		Multiplier:    multiplier,
		Variance:      variance,
		Confidence:    confidence,
		Trend:         trend,
		Samples:       len(fares),
	}
}

// Matatu fares swing with demand: school-run/commute peaks and late night
// command a premium.
func fareMultiplier(hour int) float64 {
	switch {
	case hour >= 6 && hour <= 9:
		return 1.2
	case hour >= 17 && hour <= 19:
		return 1.15
	case hour >= 21 || hour <= 4:
		return 1.3
	default:
		return 1.0
	}
}

func mean(values []float64) float64 {
	total := 0.0
	for _, value := range values {
		total += value
	}

	return total / float64(len(values))
}

func populationStdDev(values []float64) float64 {
	average := mean(values)

	sumSquares := 0.0
	for _, value := range values {
		difference := value - average
		sumSquares += difference * difference
	}

	return math.Sqrt(sumSquares / float64(len(values)))
}
