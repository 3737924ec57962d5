package calculator

import (
	"context"

	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"go.mongodb.org/mongo-driver/bson"
)

type ScoresStats struct {
	Total        int
	TotalRatings int64

	AverageOverall float64
}

func GetScores() ScoresStats {
	stats := ScoresStats{}
	scoresCollection := database.GetCollection("scores")

	numberScores, _ := scoresCollection.CountDocuments(context.Background(), bson.D{})
	stats.Total = int(numberScores)

	cursor, _ := scoresCollection.Find(context.Background(), bson.D{})

	overallTotal := 0.0
	for cursor.Next(context.Background()) {
		var score njdf.Score
		if err := cursor.Decode(&score); err != nil {
			continue
		}

		stats.TotalRatings += score.TotalReports
		overallTotal += score.Overall
	}

	if stats.Total > 0 {
		stats.AverageOverall = overallTotal / float64(stats.Total)
	}

	return stats
}
