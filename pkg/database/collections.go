package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createVehiclesIndexes()
	createLocationHistoryIndexes()
	createUsersIndexes()
}

func createVehiclesIndexes() {
	vehiclesCollection := GetCollection("vehicles")
	vehiclesIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "vehicleid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "currentlocation.latitude", Value: 1},
				{Key: "currentlocation.longitude", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "driverref", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "wastetype", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "route.ward", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := vehiclesCollection.Indexes().CreateMany(context.Background(), vehiclesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createLocationHistoryIndexes() {
	locationHistoryCollection := GetCollection("location_history")
	locationHistoryIndex := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "vehicleid", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			// Samples expire 30 days after their timestamp
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(2592000),
		},
	}

	opts := options.CreateIndexes()
	_, err := locationHistoryCollection.Indexes().CreateMany(context.Background(), locationHistoryIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createUsersIndexes() {
	usersCollection := GetCollection("users")
	usersIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := usersCollection.Indexes().CreateMany(context.Background(), usersIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
