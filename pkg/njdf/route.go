package njdf

import (
	"time"
)

type Route struct {
	PrimaryIdentifier string `groups:"basic"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`

	DataSource *DataSource `groups:"internal"`

	Name      string `groups:"basic"`
	SaccoName string `groups:"basic"`

	Stops []RouteStop `groups:"detailed"`

	// Path is the route polyline as flat alternating longitude,latitude pairs.
	Path []float64 `groups:"detailed"`

	// Fare is the baseline cash fare in KES.
	Fare float64 `groups:"basic"`

	OperatingHours *OperatingHours `groups:"basic"`

	Active bool `groups:"basic"`
}

type RouteStop struct {
	Name     string    `groups:"detailed"`
	Location *Location `groups:"detailed"`
}

type OperatingHours struct {
	Start string `groups:"basic"` // "HH:MM"
	End   string `groups:"basic"`
}

// SpanHours returns the daily operating span in hours. Overnight spans
// (end before start) wrap across midnight.
func (o *OperatingHours) SpanHours() float64 {
	if o == nil {
		return 0
	}

	start, startErr := time.Parse("15:04", o.Start)
	end, endErr := time.Parse("15:04", o.End)
	if startErr != nil || endErr != nil {
		return 0
	}

	span := end.Sub(start).Hours()
	if span < 0 {
		span += 24
	}

	return span
}
