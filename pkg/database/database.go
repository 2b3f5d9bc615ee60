package database

import (
	"context"
	"fmt"
	"time"

	"github.com/wastetrack/wastetrack/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var Instance *MongoInstance

func Connect() error {
	connectionString := util.GetEnvironmentVariable("WASTETRACK_MONGODB_CONNECTION", "mongodb://localhost:27017/")
	databaseName := util.GetEnvironmentVariable("WASTETRACK_MONGODB_DATABASE", "wastetrack")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping: %w", err)
	}

	Instance = &MongoInstance{
		Client:   client,
		Database: client.Database(databaseName),
	}

	createIndexes()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return Instance.Database.Collection(collectionName)
}
