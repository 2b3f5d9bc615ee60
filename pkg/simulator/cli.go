package simulator

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/wastetrack/wastetrack/pkg/database"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"github.com/wastetrack/wastetrack/pkg/redis_client"
	"github.com/wastetrack/wastetrack/pkg/tracker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "simulator",
		Usage: "Provides a synthetic driver feed for development",
		Subcommands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "register the demo fleet and drivers",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					return seed()
				},
			},
			{
				Name:  "run",
				Usage: "publish synthetic driver updates onto the ingest queue",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Value: 5 * time.Second,
						Usage: "delay between update rounds",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					return run(c.Duration("interval"))
				},
			},
		},
	}
}

func seed() error {
	usersCollection := database.GetCollection("users")
	for _, driver := range demoDrivers() {
		opts := options.Replace().SetUpsert(true)
		_, err := usersCollection.ReplaceOne(context.Background(), bson.M{"username": driver.Username}, driver, opts)
		if err != nil {
			return err
		}
	}

	vehiclesCollection := database.GetCollection("vehicles")
	for _, vehicle := range demoFleet() {
		opts := options.Replace().SetUpsert(true)
		_, err := vehiclesCollection.ReplaceOne(context.Background(), bson.M{"vehicleid": vehicle.VehicleID}, vehicle, opts)
		if err != nil {
			return err
		}

		log.Info().Str("vehicle", vehicle.VehicleID).Msg("Registered demo vehicle")
	}

	return nil
}

func run(interval time.Duration) error {
	queue, err := redis_client.QueueConnection.OpenQueue(tracker.QueueName)
	if err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT)
	defer signal.Stop(signals)

	vehicles := demoFleet()
	positions := map[string][2]float64{}
	stops := map[string]int{}
	for _, vehicle := range vehicles {
		positions[vehicle.VehicleID] = [2]float64{vehicle.CurrentLocation.Latitude, vehicle.CurrentLocation.Longitude}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("Publishing synthetic driver updates")

	for {
		select {
		case <-signals:
			return nil
		case <-ticker.C:
			for _, vehicle := range vehicles {
				position := positions[vehicle.VehicleID]
				position[0] += (rand.Float64() - 0.5) * 0.002
				position[1] += (rand.Float64() - 0.5) * 0.002
				positions[vehicle.VehicleID] = position

				update := tracker.DriverUpdate{
					Location: &tracker.LocationUpdate{
						VehicleID: vehicle.VehicleID,
						Latitude:  position[0],
						Longitude: position[1],
						Speed:     rand.Float64() * 40,
						Heading:   rand.Float64() * 360,
						Accuracy:  5,
					},
				}

				payload, _ := json.Marshal(update)
				if err := queue.PublishBytes(payload); err != nil {
					log.Error().Err(err).Msg("Failed to publish driver update")
				}

				// Every so often a vehicle reports route progress too
				if rand.Intn(5) == 0 {
					stops[vehicle.VehicleID]++
					completedStops := stops[vehicle.VehicleID]

					status := fleet.VehicleStatusCollecting
					if completedStops >= vehicle.Route.TotalStops {
						status = fleet.VehicleStatusCompleted
					}

					statusUpdate := tracker.DriverUpdate{
						Status: &tracker.StatusUpdate{
							VehicleID:      vehicle.VehicleID,
							Status:         status,
							CompletedStops: &completedStops,
						},
					}

					payload, _ := json.Marshal(statusUpdate)
					if err := queue.PublishBytes(payload); err != nil {
						log.Error().Err(err).Msg("Failed to publish driver update")
					}
				}
			}
		}
	}
}
