package njdf

import (
	"encoding/json"
	"time"
)

const (
	TrafficFactorMin = 0.8
	TrafficFactorMax = 1.5

	TrafficProviderReports = "reports"
	TrafficProviderNone    = "none"
)

// TrafficStatus is the soft congestion cache entry for a route. Safe to be
// stale; a missing entry means free flow.
type TrafficStatus struct {
	RouteRef string `json:"routeRef"`

	TrafficFactor   float64 `json:"trafficFactor"`
	CongestionIndex int     `json:"congestionIndex"`

	Provider  string    `json:"provider"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t TrafficStatus) MarshalBinary() ([]byte, error) {
	return json.Marshal(t)
}

func (t *TrafficStatus) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, t)
}

// DefaultTrafficStatus is the free-flow placeholder used on cache misses and
// failed resolutions.
func DefaultTrafficStatus(routeRef string) *TrafficStatus {
	return &TrafficStatus{
		RouteRef:        routeRef,
		TrafficFactor:   1.0,
		CongestionIndex: 0,
		Provider:        TrafficProviderNone,
	}
}
