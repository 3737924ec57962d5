package njdf

import (
	"time"
)

// Score is the running crowd quality score for a route. One document per
// route, only ever written by the score aggregator.
type Score struct {
	RouteRef string `groups:"basic"`

	Reliability float64 `groups:"basic"`
	Safety      float64 `groups:"basic"`
	Punctuality float64 `groups:"basic"`
	Comfort     float64 `groups:"basic"`
	Overall     float64 `groups:"basic"`

	TotalReports   int64     `groups:"basic"`
	LastCalculated time.Time `groups:"basic"`
}

// ClampScore bounds a score dimension to the valid [0,5] range.
func ClampScore(value float64) float64 {
	if value < RatingMin {
		return RatingMin
	}
	if value > RatingMax {
		return RatingMax
	}

	return value
}
