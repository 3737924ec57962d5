package scoring

import (
	"context"
	"errors"

	"github.com/njiago/njiago/pkg/database"
	"github.com/njiago/njiago/pkg/njdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists scores and rate limit records in the shared database.
type MongoStore struct{}

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

func (s MongoStore) UpsertScore(ctx context.Context, score *njdf.Score) error {
	scoresCollection := database.GetCollection("scores")

	opts := options.Update().SetUpsert(true)
	_, err := scoresCollection.UpdateOne(ctx, bson.M{"routeref": score.RouteRef}, bson.M{"$set": score}, opts)

	return err
}

func (s MongoStore) Record(ctx context.Context, routeRef string, deviceFingerprint string) (*njdf.RateLimitRecord, error) {
	rateLimitsCollection := database.GetCollection("rate_limits")

	searchQuery := bson.M{
		"routeref":          routeRef,
		"devicefingerprint": deviceFingerprint,
	}

	var record *njdf.RateLimitRecord
	err := rateLimitsCollection.FindOne(ctx, searchQuery).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s MongoStore) UpsertRecord(ctx context.Context, record *njdf.RateLimitRecord) error {
	rateLimitsCollection := database.GetCollection("rate_limits")

	searchQuery := bson.M{
		"routeref":          record.RouteRef,
		"devicefingerprint": record.DeviceFingerprint,
	}

	opts := options.Update().SetUpsert(true)
	_, err := rateLimitsCollection.UpdateOne(ctx, searchQuery, bson.M{"$set": record}, opts)

	return err
}
