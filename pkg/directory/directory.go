package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/wastetrack/wastetrack/pkg/database"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"github.com/wastetrack/wastetrack/pkg/redis_client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Directory resolves a driver reference to a display name. The core
// never owns driver records - this is its only view of the user
// directory.
type Directory interface {
	DisplayName(ctx context.Context, driverRef string) (string, error)
}

type driverRecord struct {
	Username string
	Name     string
}

// MongoDirectory looks drivers up in the users collection, cached in
// redis for 90 minutes.
type MongoDirectory struct {
	cache *cache.Cache[string]
}

func NewMongoDirectory() *MongoDirectory {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(90*time.Minute))

	return &MongoDirectory{
		cache: cache.New[string](redisStore),
	}
}

func (d *MongoDirectory) DisplayName(ctx context.Context, driverRef string) (string, error) {
	if driverRef == "" {
		return "", fleet.ErrNotFound
	}

	cacheKey := fmt.Sprintf("driver-name/%s", driverRef)

	if cachedName, err := d.cache.Get(ctx, cacheKey); err == nil && cachedName != "" {
		return cachedName, nil
	}

	usersCollection := database.GetCollection("users")

	var driver *driverRecord
	err := usersCollection.FindOne(ctx, bson.M{"username": driverRef}).Decode(&driver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fleet.ErrNotFound
		}

		return "", fmt.Errorf("%w: %s", fleet.ErrUnavailable, err.Error())
	}

	displayName := driver.Name
	if displayName == "" {
		displayName = driver.Username
	}

	d.cache.Set(ctx, cacheKey, displayName)

	return displayName, nil
}
