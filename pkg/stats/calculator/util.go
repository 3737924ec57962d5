package calculator

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func CountAggregate(collection *mongo.Collection, aggregateKey string) map[string]int {
	countMap := map[string]int{}

	aggregation := mongo.Pipeline{
		bson.D{
			{Key: "$group",
				Value: bson.D{
					{Key: "_id", Value: aggregateKey},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				},
			},
		},
	}
	var result []bson.M
	cursor, _ := collection.Aggregate(context.Background(), aggregation)
	cursor.All(context.Background(), &result)

	for _, record := range result {
		key, keyOk := record["_id"].(string)
		count, countOk := record["count"].(int32)
		if !keyOk || !countOk {
			continue
		}

		countMap[key] = int(count)
	}

	return countMap
}

// Route identifiers carry the region as their third segment
// (KE:ROUTE:NBO:111)
func CountRegions(routeRefs map[string]int) map[string]int {
	regions := map[string]int{}

	for routeRef, count := range routeRefs {
		routeRefSplit := strings.Split(routeRef, ":")
		if len(routeRefSplit) < 3 {
			continue
		}

		regions[routeRefSplit[2]] += count
	}

	return regions
}
