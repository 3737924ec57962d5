package traffic

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/njiago/njiago/pkg/geospatial"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/njiago/njiago/pkg/util"
	"github.com/rs/zerolog/log"
)

const boundingBoxPadding = 0.005

type ReportStore interface {
	CountSince(ctx context.Context, routeRef string, reportTypes []njdf.ReportType, since time.Time) (int64, error)
}

// ResolutionError marks a resolution that could not complete and was
// replaced by the neutral default at the boundary.
type ResolutionError struct {
	Stage string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("traffic resolution failed during %s: %s", e.Stage, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Resolver derives a congestion factor per route, either from an external
// flow provider or from recent crowding and delay report density when no
// provider is configured.
type Resolver struct {
	Config   Config
	Provider FlowProvider
	Reports  ReportStore
	Now      func() time.Time
}

func NewResolver(config Config, provider FlowProvider, reports ReportStore) *Resolver {
	return &Resolver{
		Config:   config,
		Provider: provider,
		Reports:  reports,
		Now:      time.Now,
	}
}

// Resolve never fails. Routes that cannot be resolved get the neutral
// default status.
func (r *Resolver) Resolve(ctx context.Context, route *njdf.Route) *njdf.TrafficStatus {
	status, resolutionErr := r.ResolveDetailed(ctx, route)
	if resolutionErr != nil {
		log.Debug().Err(resolutionErr).Str("route", route.PrimaryIdentifier).Msg("Traffic resolution defaulted")

		defaulted := njdf.DefaultTrafficStatus(route.PrimaryIdentifier)
		defaulted.UpdatedAt = r.Now()
		return defaulted
	}

	return status
}

// ResolveDetailed reports why a route defaulted so callers and tests can
// tell a resolved neutral factor from a defaulted one.
func (r *Resolver) ResolveDetailed(ctx context.Context, route *njdf.Route) (*njdf.TrafficStatus, *ResolutionError) {
	if r.Config.Provider.Configured() && r.Provider != nil {
		return r.resolveFromProvider(ctx, route), nil
	}

	return r.resolveFromReports(ctx, route)
}

func (r *Resolver) resolveFromProvider(ctx context.Context, route *njdf.Route) *njdf.TrafficStatus {
	providerName := r.Config.Provider.Name
	if providerName == "" {
		providerName = "external"
	}

	// Fail open: provider problems yield a neutral factor attributed to the
	// provider, not an error
	neutral := &njdf.TrafficStatus{
		RouteRef:        route.PrimaryIdentifier,
		TrafficFactor:   1.0,
		CongestionIndex: 0,
		Provider:        providerName,
		UpdatedAt:       r.Now(),
	}

	box, ok := routeBoundingBox(route)
	if !ok {
		return neutral
	}

	records, err := r.Provider.FlowRecords(ctx, box)
	if err != nil {
		log.Debug().Err(err).Str("route", route.PrimaryIdentifier).Msg("Flow provider query failed")
		return neutral
	}
	if len(records) == 0 {
		return neutral
	}

	totalJam := 0.0
	for _, record := range records {
		totalJam += record.JamFactor
	}
	averageJam := totalJam / float64(len(records))

	return &njdf.TrafficStatus{
		RouteRef:        route.PrimaryIdentifier,
		TrafficFactor:   clampFactor(1.0 + averageJam/10*0.5),
		CongestionIndex: clampCongestion(averageJam / 10 * 100),
		Provider:        providerName,
		UpdatedAt:       r.Now(),
	}
}

func (r *Resolver) resolveFromReports(ctx context.Context, route *njdf.Route) (*njdf.TrafficStatus, *ResolutionError) {
	since := util.LookbackStart(r.Now(), r.Config.FallbackWindow())

	reportTypes := []njdf.ReportType{njdf.ReportTypeCrowding, njdf.ReportTypeDelay}

	count, err := r.Reports.CountSince(ctx, route.PrimaryIdentifier, reportTypes, since)
	if err != nil {
		return nil, &ResolutionError{Stage: "report count", Err: err}
	}

	factor := math.Min(njdf.TrafficFactorMax, 1.0+float64(count)/20)
	congestionIndex := int(math.Min(100, math.Round((factor-1.0)/0.5*100)))

	return &njdf.TrafficStatus{
		RouteRef:        route.PrimaryIdentifier,
		TrafficFactor:   factor,
		CongestionIndex: congestionIndex,
		Provider:        njdf.TrafficProviderReports,
		UpdatedAt:       r.Now(),
	}, nil
}

func routeBoundingBox(route *njdf.Route) (geospatial.BoundingBox, bool) {
	box, ok := geospatial.PathBoundingBox(route.Path)

	if !ok {
		var stopCoordinates []float64
		for _, stop := range route.Stops {
			if stop.Location == nil || len(stop.Location.Coordinates) < 2 {
				continue
			}

			stopCoordinates = append(stopCoordinates, stop.Location.Coordinates[0], stop.Location.Coordinates[1])
		}

		box, ok = geospatial.PathBoundingBox(stopCoordinates)
	}

	if !ok {
		return geospatial.BoundingBox{}, false
	}

	return box.Pad(boundingBoxPadding), true
}

func clampFactor(factor float64) float64 {
	if factor < njdf.TrafficFactorMin {
		return njdf.TrafficFactorMin
	}
	if factor > njdf.TrafficFactorMax {
		return njdf.TrafficFactorMax
	}

	return factor
}

func clampCongestion(index float64) int {
	if index < 0 {
		return 0
	}
	if index > 100 {
		return 100
	}

	return int(math.Round(index))
}
