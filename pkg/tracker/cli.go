package tracker

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/urfave/cli/v2"
	"github.com/wastetrack/wastetrack/pkg/consumer"
	"github.com/wastetrack/wastetrack/pkg/database"
	"github.com/wastetrack/wastetrack/pkg/fanout"
	"github.com/wastetrack/wastetrack/pkg/redis_client"
	"github.com/wastetrack/wastetrack/pkg/store"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "consumer",
		Usage: "Provides the tracking ingest consumers",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the tracking-events queue consumers",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					hub := fanout.NewHub()
					reconciler := NewReconciler(store.NewMongoVehicles(), store.NewMongoHistory(), hub)

					if err := StartConsumers(reconciler); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish
					hub.Close()

					return nil
				},
			},
		},
	}
}

// StartConsumers attaches batch consumers to the tracking-events queue.
func StartConsumers(reconciler *Reconciler) error {
	pool := consumer.Pool{
		Queue:        QueueName,
		Workers:      5,
		BatchSize:    200,
		BatchTimeout: 2 * time.Second,
		NewConsumer: func(id int) rmq.BatchConsumer {
			return NewBatchConsumer(id, reconciler)
		},
	}

	return pool.Start()
}
