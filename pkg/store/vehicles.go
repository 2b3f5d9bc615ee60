package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/wastetrack/wastetrack/pkg/database"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVehicles stores vehicle state in the vehicles collection,
// keyed by the canonical vehicle identifier.
type MongoVehicles struct{}

func NewMongoVehicles() *MongoVehicles {
	return &MongoVehicles{}
}

func (s *MongoVehicles) Get(ctx context.Context, vehicleID string) (*fleet.Vehicle, error) {
	vehiclesCollection := database.GetCollection("vehicles")

	var vehicle *fleet.Vehicle
	err := vehiclesCollection.FindOne(ctx, bson.M{"vehicleid": vehicleID}).Decode(&vehicle)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fleet.ErrNotFound
		}

		return nil, unavailable(err)
	}

	return vehicle, nil
}

func (s *MongoVehicles) Upsert(ctx context.Context, vehicle *fleet.Vehicle) error {
	vehiclesCollection := database.GetCollection("vehicles")

	opts := options.Replace().SetUpsert(true)
	_, err := vehiclesCollection.ReplaceOne(ctx, bson.M{"vehicleid": vehicle.VehicleID}, vehicle, opts)

	if err != nil {
		return unavailable(err)
	}

	return nil
}

func (s *MongoVehicles) Query(ctx context.Context, filter VehicleFilter) ([]fleet.Vehicle, error) {
	vehiclesCollection := database.GetCollection("vehicles")

	query := bson.M{}

	if len(filter.ExcludeStatuses) > 0 {
		query["status"] = bson.M{"$nin": filter.ExcludeStatuses}
	}

	if filter.Bounds != nil {
		query["currentlocation.latitude"] = bson.M{
			"$gte": filter.Bounds.LatMin,
			"$lte": filter.Bounds.LatMax,
		}
		query["currentlocation.longitude"] = bson.M{
			"$gte": filter.Bounds.LngMin,
			"$lte": filter.Bounds.LngMax,
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "currentlocation.timestamp", Value: -1}})
	cursor, err := vehiclesCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, unavailable(err)
	}

	var vehicles []fleet.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, unavailable(err)
	}

	return vehicles, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %s", fleet.ErrUnavailable, err.Error())
}
