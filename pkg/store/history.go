package store

import (
	"context"
	"time"

	"github.com/wastetrack/wastetrack/pkg/database"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHistory appends position samples to the location_history
// collection. Retention is owned by the collection's TTL index, so
// queries never have to filter out expired samples.
type MongoHistory struct{}

func NewMongoHistory() *MongoHistory {
	return &MongoHistory{}
}

func (s *MongoHistory) Append(ctx context.Context, sample fleet.LocationSample) error {
	locationHistoryCollection := database.GetCollection("location_history")

	_, err := locationHistoryCollection.InsertOne(ctx, sample)
	if err != nil {
		return unavailable(err)
	}

	return nil
}

func (s *MongoHistory) History(ctx context.Context, vehicleID string, from time.Time, to time.Time, limit int64) ([]fleet.LocationSample, error) {
	locationHistoryCollection := database.GetCollection("location_history")

	query := bson.M{"vehicleid": vehicleID}

	timestampRange := bson.M{}
	if !from.IsZero() {
		timestampRange["$gte"] = from
	}
	if !to.IsZero() {
		timestampRange["$lte"] = to
	}
	if len(timestampRange) > 0 {
		query["timestamp"] = timestampRange
	}

	if limit <= 0 || limit > MaxHistoryResults {
		limit = MaxHistoryResults
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := locationHistoryCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, unavailable(err)
	}

	var samples []fleet.LocationSample
	if err := cursor.All(ctx, &samples); err != nil {
		return nil, unavailable(err)
	}

	return samples, nil
}
