package routes

import (
	"context"
	"time"

	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReportStore is the handlers' write and feed path for rider reports.
type MongoReportStore struct{}

func (s MongoReportStore) Insert(ctx context.Context, report *njdf.Report) error {
	reportsCollection := database.GetCollection("reports")

	_, err := reportsCollection.InsertOne(ctx, report)

	return err
}

func (s MongoReportStore) RecentByRoute(ctx context.Context, routeRef string, since time.Time, reportType njdf.ReportType) ([]*njdf.Report, error) {
	reportsCollection := database.GetCollection("reports")

	searchQuery := bson.M{
		"routeref":  routeRef,
		"createdat": bson.M{"$gte": since},
	}
	if reportType != "" {
		searchQuery["reporttype"] = reportType
	}

	// Newest first, the feed is read top down
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})

	cursor, err := reportsCollection.Find(ctx, searchQuery, opts)
	if err != nil {
		return nil, err
	}

	reports := []*njdf.Report{}
	for cursor.Next(ctx) {
		var report njdf.Report
		if err := cursor.Decode(&report); err != nil {
			return nil, err
		}

		reports = append(reports, &report)
	}

	return reports, nil
}
