package traffic

import (
	"context"

	"github.com/njiago/njiago/pkg/njdf"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const refreshMaxGoroutines = 8

type RouteStore interface {
	ActiveRoutes(ctx context.Context) ([]*njdf.Route, error)
}

type EventPublisher interface {
	Publish(eventType njdf.EventType, body interface{})
}

// Refresher recomputes the traffic status of every active route. This is
// the only write path into the traffic cache.
type Refresher struct {
	Resolver *Resolver
	Cache    *Cache
	Routes   RouteStore
	Events   EventPublisher
}

func (r *Refresher) RefreshAll(ctx context.Context) (int, error) {
	routes, err := r.Routes.ActiveRoutes(ctx)
	if err != nil {
		return 0, err
	}

	p := pool.NewWithResults[bool]()
	p.WithMaxGoroutines(refreshMaxGoroutines)

	for _, route := range routes {
		p.Go(func() bool {
			status := r.Resolver.Resolve(ctx, route)

			if err := r.Cache.Upsert(ctx, status); err != nil {
				log.Error().Err(err).Str("route", route.PrimaryIdentifier).Msg("Failed to update traffic status")
				return false
			}

			return true
		})
	}

	updatedCount := 0
	for _, updated := range p.Wait() {
		if updated {
			updatedCount = updatedCount + 1
		}
	}

	log.Info().Int("updated", updatedCount).Int("routes", len(routes)).Msg("Traffic refresh complete")

	if r.Events != nil {
		r.Events.Publish(njdf.EventTypeTrafficRefreshed, map[string]interface{}{
			"updatedCount": updatedCount,
		})
	}

	return updatedCount, nil
}
