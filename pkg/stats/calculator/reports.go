package calculator

import (
	"context"
	"time"

	"github.com/njiago/njiago/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

type ReportsStats struct {
	Total          int
	LastThirtyDays int

	Types      map[string]int
	Severities map[string]int
}

func GetReports() ReportsStats {
	stats := ReportsStats{}
	reportsCollection := database.GetCollection("reports")

	numberReports, _ := reportsCollection.CountDocuments(context.Background(), bson.D{})
	stats.Total = int(numberReports)

	windowStart := time.Now().AddDate(0, 0, -30)
	numberRecentReports, _ := reportsCollection.CountDocuments(context.Background(), bson.M{
		"createdat": bson.M{"$gte": windowStart},
	})
	stats.LastThirtyDays = int(numberRecentReports)

	stats.Types = CountAggregate(reportsCollection, "$reporttype")
	stats.Severities = CountAggregate(reportsCollection, "$severity")

	return stats
}
