package routes

import (
	"context"
	"time"

	"github.com/njiago/njiago/pkg/insights"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/njiago/njiago/pkg/scoring"
)

type RatingService interface {
	SubmitRating(ctx context.Context, routeRef string, rating njdf.Rating, deviceFingerprint string, userRef string) (scoring.SubmitResult, error)
}

type InsightsEngine interface {
	RouteInsights(ctx context.Context, routeRef string, days int) (*insights.RouteInsights, error)
	TopRouteInsights(ctx context.Context, limit int, days int) []*insights.RouteInsights
}

type RouteStore interface {
	Route(ctx context.Context, routeRef string) (*njdf.Route, error)
}

type ReportStore interface {
	Insert(ctx context.Context, report *njdf.Report) error
	RecentByRoute(ctx context.Context, routeRef string, since time.Time, reportType njdf.ReportType) ([]*njdf.Report, error)
}

type TrafficStatusReader interface {
	All(ctx context.Context) ([]*njdf.TrafficStatus, error)
}

type TrafficRefresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

type EventPublisher interface {
	Publish(eventType njdf.EventType, body interface{})
}

type Dependencies struct {
	Ratings  RatingService
	Insights InsightsEngine
	Routes   RouteStore
	Reports  ReportStore

	TrafficStatuses TrafficStatusReader
	Traffic         TrafficRefresher

	Events EventPublisher
}

var deps Dependencies

// Setup injects the handlers' collaborators. Call it before the server
// starts taking requests.
func Setup(d Dependencies) {
	deps = d
}
