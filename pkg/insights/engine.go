package insights

import (
	"context"
	"errors"
	"time"

	"github.com/njiago/njiago/pkg/geospatial"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrUnknownRoute = errors.New("unknown route")

// Longest report history a caller can ask predictions to look at
const maxLookbackDays = 90

type Config struct {
	LookbackDays int
	BaseSpeedKmh float64
	TopLimit     int
}

func DefaultConfig() Config {
	return Config{
		LookbackDays: 30,
		BaseSpeedKmh: 25,
		TopLimit:     3,
	}
}

// ReportStore returns a route's reports in the lookback window ordered
// oldest first.
type ReportStore interface {
	ReportsSince(ctx context.Context, routeRef string, since time.Time) ([]*njdf.Report, error)
}

type ScoreStore interface {
	Score(ctx context.Context, routeRef string) (*njdf.Score, error)
}

type RouteStore interface {
	Route(ctx context.Context, routeRef string) (*njdf.Route, error)
	ActiveRoutes(ctx context.Context) ([]*njdf.Route, error)
}

type TrafficSource interface {
	Status(ctx context.Context, routeRef string) *njdf.TrafficStatus
}

// RouteInsights is the full analytics payload for one route.
type RouteInsights struct {
	RouteRef  string `json:"routeRef"`
	RouteName string `json:"routeName"`
	SaccoName string `json:"saccoName"`

	GeneratedAt  time.Time `json:"generatedAt"`
	LookbackDays int       `json:"lookbackDays"`
	ReportCount  int       `json:"reportCount"`

	Score *ScoreSummary `json:"score,omitempty"`

	Fare       FarePrediction  `json:"fare"`
	Safety     SafetyScore     `json:"safety"`
	Crowd      CrowdDensity    `json:"crowd"`
	Efficiency EfficiencyScore `json:"efficiency"`

	Traffic *njdf.TrafficStatus `json:"traffic"`

	DistanceKm        float64 `json:"distanceKm"`
	TravelTimeMinutes int     `json:"travelTimeMinutes"`
}

type ScoreSummary struct {
	Overall        float64   `json:"overall"`
	Reliability    float64   `json:"reliability"`
	Safety         float64   `json:"safety"`
	Punctuality    float64   `json:"punctuality"`
	Comfort        float64   `json:"comfort"`
	TotalReports   int64     `json:"totalReports"`
	LastCalculated time.Time `json:"lastCalculated"`
}

// Engine answers analytics queries by combining the raw report stream, the
// aggregate score, the route catalog and the traffic cache. Missing data
// degrades to the documented neutral predictions, it never fails a query.
type Engine struct {
	Config Config

	Reports ReportStore
	Scores  ScoreStore
	Routes  RouteStore
	Traffic TrafficSource

	Now func() time.Time
}

func NewEngine(config Config, reports ReportStore, scores ScoreStore, routes RouteStore, traffic TrafficSource) *Engine {
	return &Engine{
		Config:  config,
		Reports: reports,
		Scores:  scores,
		Routes:  routes,
		Traffic: traffic,
		Now:     time.Now,
	}
}

// RouteInsights builds the insight payload for a single route. The only
// error is a route that cannot be loaded.
func (e *Engine) RouteInsights(ctx context.Context, routeRef string, days int) (*RouteInsights, error) {
	route, err := e.Routes.Route(ctx, routeRef)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrUnknownRoute
	}

	return e.assemble(ctx, route, e.routeScore(ctx, route.PrimaryIdentifier), days), nil
}

// TopRouteInsights ranks the active routes by overall score and assembles
// insights for the leaders. Routes without a score yet rank last.
func (e *Engine) TopRouteInsights(ctx context.Context, limit int, days int) []*RouteInsights {
	if limit <= 0 {
		limit = e.Config.TopLimit
	}

	routes, err := e.Routes.ActiveRoutes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load routes for ranking")
		return []*RouteInsights{}
	}

	ranked := make([]rankedRoute, 0, len(routes))
	for _, route := range routes {
		ranked = append(ranked, rankedRoute{
			route: route,
			score: e.routeScore(ctx, route.PrimaryIdentifier),
		})
	}

	slices.SortStableFunc(ranked, func(a, b rankedRoute) int {
		if a.score == nil && b.score == nil {
			return 0
		}
		if a.score == nil {
			return 1
		}
		if b.score == nil {
			return -1
		}

		switch {
		case a.score.Overall > b.score.Overall:
			return -1
		case a.score.Overall < b.score.Overall:
			return 1
		}

		return 0
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	leaders := make([]*RouteInsights, 0, len(ranked))
	for _, entry := range ranked {
		leaders = append(leaders, e.assemble(ctx, entry.route, entry.score, days))
	}

	return leaders
}

type rankedRoute struct {
	route *njdf.Route
	score *njdf.Score
}

func (e *Engine) assemble(ctx context.Context, route *njdf.Route, score *njdf.Score, days int) *RouteInsights {
	now := e.Now()

	lookbackDays := days
	if lookbackDays <= 0 {
		lookbackDays = e.Config.LookbackDays
	}
	if lookbackDays > maxLookbackDays {
		lookbackDays = maxLookbackDays
	}
	since := now.AddDate(0, 0, -lookbackDays)

	reports, err := e.Reports.ReportsSince(ctx, route.PrimaryIdentifier, since)
	if err != nil {
		log.Error().Err(err).Str("route", route.PrimaryIdentifier).Msg("Failed to load reports, predicting from an empty window")
		reports = nil
	}

	traffic := e.trafficStatus(ctx, route.PrimaryIdentifier)

	distanceKm := geospatial.RouteDistanceKm(route.Path, len(route.Stops))
	effectiveSpeedKmh := e.Config.BaseSpeedKmh / traffic.TrafficFactor

	return &RouteInsights{
		RouteRef:  route.PrimaryIdentifier,
		RouteName: route.Name,
		SaccoName: route.SaccoName,

		GeneratedAt:  now,
		LookbackDays: lookbackDays,
		ReportCount:  len(reports),

		Score: summarizeScore(score),

		Fare:       PredictFare(route, reports, now),
		Safety:     ScoreSafety(filterReports(reports, njdf.ReportTypeSafety, njdf.ReportTypeAccident)),
		Crowd:      EstimateCrowd(filterReports(reports, njdf.ReportTypeCrowding), now),
		Efficiency: ScoreEfficiency(route, score, reports),

		Traffic: traffic,

		DistanceKm:        distanceKm,
		TravelTimeMinutes: geospatial.TravelTimeMinutes(distanceKm, effectiveSpeedKmh),
	}
}

func (e *Engine) routeScore(ctx context.Context, routeRef string) *njdf.Score {
	score, err := e.Scores.Score(ctx, routeRef)
	if err != nil {
		log.Error().Err(err).Str("route", routeRef).Msg("Failed to load score")
		return nil
	}

	return score
}

func (e *Engine) trafficStatus(ctx context.Context, routeRef string) *njdf.TrafficStatus {
	if e.Traffic == nil {
		return njdf.DefaultTrafficStatus(routeRef)
	}

	return e.Traffic.Status(ctx, routeRef)
}

func summarizeScore(score *njdf.Score) *ScoreSummary {
	if score == nil {
		return nil
	}

	return &ScoreSummary{
		Overall:        score.Overall,
		Reliability:    score.Reliability,
		Safety:         score.Safety,
		Punctuality:    score.Punctuality,
		Comfort:        score.Comfort,
		TotalReports:   score.TotalReports,
		LastCalculated: score.LastCalculated,
	}
}

func filterReports(reports []*njdf.Report, reportTypes ...njdf.ReportType) []*njdf.Report {
	var matched []*njdf.Report
	for _, report := range reports {
		if slices.Contains(reportTypes, report.ReportType) {
			matched = append(matched, report)
		}
	}

	return matched
}
