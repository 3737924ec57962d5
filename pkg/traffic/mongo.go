package traffic

import (
	"context"
	"time"

	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"go.mongodb.org/mongo-driver/bson"
)

// MongoStore runs the report and route queries against the shared database.
type MongoStore struct{}

func (s MongoStore) CountSince(ctx context.Context, routeRef string, reportTypes []njdf.ReportType, since time.Time) (int64, error) {
	reportsCollection := database.GetCollection("reports")

	return reportsCollection.CountDocuments(ctx, bson.M{
		"routeref":   routeRef,
		"reporttype": bson.M{"$in": reportTypes},
		"createdat":  bson.M{"$gte": since},
	})
}

func (s MongoStore) ActiveRoutes(ctx context.Context) ([]*njdf.Route, error) {
	routesCollection := database.GetCollection("routes")

	cursor, err := routesCollection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}

	var routes []*njdf.Route
	for cursor.Next(ctx) {
		var route njdf.Route
		if err := cursor.Decode(&route); err != nil {
			return nil, err
		}

		routes = append(routes, &route)
	}

	return routes, nil
}
