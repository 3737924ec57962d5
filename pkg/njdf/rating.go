package njdf

// Rating is a single crowd submission against a route. Every dimension is
// optional; a missing dimension falls back to Overall during aggregation.
type Rating struct {
	Reliability *float64 `json:"reliability"`
	Safety      *float64 `json:"safety"`
	Punctuality *float64 `json:"punctuality"`
	Comfort     *float64 `json:"comfort"`
	Overall     *float64 `json:"overall"`
}

const (
	RatingMin = 0.0
	RatingMax = 5.0
)

func (r *Rating) Validate() error {
	provided := false

	for field, value := range r.fields() {
		if value == nil {
			continue
		}

		provided = true

		if *value < RatingMin || *value > RatingMax {
			return &ValidationError{
				Field:   field,
				Message: "rating values must be between 0 and 5",
			}
		}
	}

	if !provided {
		return &ValidationError{
			Message: "at least one rating dimension must be provided",
		}
	}

	return nil
}

func (r *Rating) fields() map[string]*float64 {
	return map[string]*float64{
		"reliability": r.Reliability,
		"safety":      r.Safety,
		"punctuality": r.Punctuality,
		"comfort":     r.Comfort,
		"overall":     r.Overall,
	}
}
