package calculator

import (
	"context"

	"github.com/njiago/njiago/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

type RoutesStats struct {
	Total  int
	Active int

	Saccos  map[string]int
	Regions map[string]int
}

func GetRoutes() RoutesStats {
	stats := RoutesStats{}
	routesCollection := database.GetCollection("routes")

	numberRoutes, _ := routesCollection.CountDocuments(context.Background(), bson.D{})
	stats.Total = int(numberRoutes)

	numberActiveRoutes, _ := routesCollection.CountDocuments(context.Background(), bson.M{"active": true})
	stats.Active = int(numberActiveRoutes)

	stats.Saccos = CountAggregate(routesCollection, "$sacconame")
	stats.Regions = CountRegions(CountAggregate(routesCollection, "$primaryidentifier"))

	return stats
}
