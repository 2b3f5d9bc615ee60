package api

import (
	"github.com/urfave/cli/v2"
	"github.com/wastetrack/wastetrack/pkg/database"
	"github.com/wastetrack/wastetrack/pkg/directory"
	"github.com/wastetrack/wastetrack/pkg/fanout"
	"github.com/wastetrack/wastetrack/pkg/redis_client"
	"github.com/wastetrack/wastetrack/pkg/snapshot"
	"github.com/wastetrack/wastetrack/pkg/store"
	"github.com/wastetrack/wastetrack/pkg/tracker"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run the tracking API, websocket gateway and ingest consumers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Value: ":8080",
				Usage: "listen target for the web server",
			},
		},
		Action: func(c *cli.Context) error {
			if err := database.Connect(); err != nil {
				return err
			}
			if err := redis_client.Connect(); err != nil {
				return err
			}

			vehicles := store.NewMongoVehicles()
			history := store.NewMongoHistory()

			hub := fanout.NewHub()
			defer hub.Close()

			reconciler := tracker.NewReconciler(vehicles, history, hub)
			snapshotService := snapshot.NewService(vehicles, directory.NewMongoDirectory())

			if err := tracker.StartConsumers(reconciler); err != nil {
				return err
			}

			return SetupServer(c.String("listen"), Dependencies{
				Reconciler: reconciler,
				Snapshot:   snapshotService,
				Hub:        hub,
				Vehicles:   vehicles,
				History:    history,
			})
		},
	}
}
