package traffic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"github.com/njiago/njiago/pkg/redis_client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HotCache is the slice of gocache the traffic cache uses. The plain Redis
// store hands values back as strings, so statuses go through it in their
// marshaled JSON form and get decoded on the way out.
type HotCache interface {
	Get(ctx context.Context, key any) (string, error)
	Set(ctx context.Context, key any, object string, options ...store.Option) error
}

// Cache is the read path for traffic statuses. Statuses live in the
// traffic_status collection with a Redis hot layer in front; a miss on both
// yields the neutral default, stale data is acceptable.
type Cache struct {
	HotCache HotCache
}

func (c *Cache) Setup(expiry time.Duration) {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(expiry))

	c.HotCache = cache.New[string](redisStore)
}

func (c *Cache) Status(ctx context.Context, routeRef string) *njdf.TrafficStatus {
	if c.HotCache != nil {
		cached, err := c.HotCache.Get(ctx, cacheKey(routeRef))
		if err == nil && cached != "" {
			var status njdf.TrafficStatus
			if err := status.UnmarshalBinary([]byte(cached)); err == nil {
				return &status
			}
		}
	}

	trafficStatusCollection := database.GetCollection("traffic_status")

	var status *njdf.TrafficStatus
	err := trafficStatusCollection.FindOne(ctx, bson.M{"routeref": routeRef}).Decode(&status)
	if err != nil || status == nil {
		return njdf.DefaultTrafficStatus(routeRef)
	}

	c.cacheStatus(ctx, status)

	return status
}

func (c *Cache) Upsert(ctx context.Context, status *njdf.TrafficStatus) error {
	trafficStatusCollection := database.GetCollection("traffic_status")

	opts := options.Update().SetUpsert(true)
	_, err := trafficStatusCollection.UpdateOne(ctx, bson.M{"routeref": status.RouteRef}, bson.M{"$set": status}, opts)
	if err != nil {
		return err
	}

	c.cacheStatus(ctx, status)

	return nil
}

func (c *Cache) All(ctx context.Context) ([]*njdf.TrafficStatus, error) {
	trafficStatusCollection := database.GetCollection("traffic_status")

	cursor, err := trafficStatusCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var statuses []*njdf.TrafficStatus
	for cursor.Next(ctx) {
		var status njdf.TrafficStatus
		if err := cursor.Decode(&status); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return nil, err
		}

		statuses = append(statuses, &status)
	}

	return statuses, nil
}

func (c *Cache) cacheStatus(ctx context.Context, status *njdf.TrafficStatus) {
	if c.HotCache == nil {
		return
	}

	marshaled, err := status.MarshalBinary()
	if err != nil {
		return
	}

	c.HotCache.Set(ctx, cacheKey(status.RouteRef), string(marshaled))
}

func cacheKey(routeRef string) string {
	return fmt.Sprintf("traffic_status:%s", routeRef)
}
