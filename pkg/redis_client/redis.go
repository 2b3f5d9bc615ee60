package redis_client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/wastetrack/wastetrack/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

func Connect() error {
	address := util.GetEnvironmentVariable("WASTETRACK_REDIS_ADDRESS", "localhost:6379")
	password := util.GetEnvironmentVariable("WASTETRACK_REDIS_PASSWORD", "")

	database, err := strconv.Atoi(util.GetEnvironmentVariable("WASTETRACK_REDIS_DATABASE", "0"))
	if err != nil {
		return fmt.Errorf("redis database number: %w", err)
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	QueueConnection, err = rmq.OpenConnectionWithRedisClient("wastetrack", Client, nil)
	if err != nil {
		return fmt.Errorf("rmq connection: %w", err)
	}

	return nil
}
