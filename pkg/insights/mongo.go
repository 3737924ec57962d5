package insights

import (
	"context"
	"errors"
	"time"

	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore reads the report, score and route collections for the engine.
type MongoStore struct{}

func (s MongoStore) ReportsSince(ctx context.Context, routeRef string, since time.Time) ([]*njdf.Report, error) {
	reportsCollection := database.GetCollection("reports")

	searchQuery := bson.M{
		"routeref":  routeRef,
		"createdat": bson.M{"$gte": since},
	}

	// Oldest first so fare trends compare the window ends the right way round
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: 1}})

	cursor, err := reportsCollection.Find(ctx, searchQuery, opts)
	if err != nil {
		return nil, err
	}

	var reports []*njdf.Report
	for cursor.Next(ctx) {
		var report njdf.Report
		if err := cursor.Decode(&report); err != nil {
			return nil, err
		}

		reports = append(reports, &report)
	}

	return reports, nil
}

func (s MongoStore) Score(ctx context.Context, routeRef string) (*njdf.Score, error) {
	scoresCollection := database.GetCollection("scores")

	var score *njdf.Score
	err := scoresCollection.FindOne(ctx, bson.M{"routeref": routeRef}).Decode(&score)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return score, nil
}

func (s MongoStore) Route(ctx context.Context, routeRef string) (*njdf.Route, error) {
	routesCollection := database.GetCollection("routes")

	var route *njdf.Route
	err := routesCollection.FindOne(ctx, bson.M{"primaryidentifier": routeRef}).Decode(&route)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return route, nil
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
