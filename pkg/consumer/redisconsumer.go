package consumer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/wastetrack/wastetrack/pkg/redis_client"
	"github.com/wastetrack/wastetrack/pkg/util"
)

// Pool drains one rmq queue with a set of batch consumers and exposes
// queue stats plus a health probe over HTTP.
type Pool struct {
	Queue string

	Workers      int
	BatchSize    int
	BatchTimeout time.Duration

	// NewConsumer builds the batch consumer for a worker slot
	NewConsumer func(id int) rmq.BatchConsumer
}

func (p *Pool) Start() error {
	queue, err := redis_client.QueueConnection.OpenQueue(p.Queue)
	if err != nil {
		return err
	}

	prefetch := int64(p.Workers * p.BatchSize)
	if err := queue.StartConsuming(prefetch, time.Second); err != nil {
		return err
	}

	for id := 0; id < p.Workers; id++ {
		tag := fmt.Sprintf("%s-%d", p.Queue, id)
		if _, err := queue.AddBatchConsumer(tag, int64(p.BatchSize), p.BatchTimeout, p.NewConsumer(id)); err != nil {
			return err
		}

		log.Info().Str("queue", p.Queue).Str("tag", tag).Msg("Started batch consumer")
	}

	go p.serveMonitoring()

	return nil
}

func (p *Pool) serveMonitoring() {
	listen := util.GetEnvironmentVariable("WASTETRACK_STATS_LISTEN", ":3333")

	mux := http.NewServeMux()
	mux.Handle(fmt.Sprintf("/%s/stats", p.Queue), queueStatsHandler{connection: redis_client.QueueConnection})
	mux.HandleFunc("/health", healthProbe)

	log.Info().Str("listen", listen).Str("queue", p.Queue).Msg("Queue monitoring listening")

	if err := http.ListenAndServe(listen, mux); err != nil {
		log.Error().Err(err).Msg("Queue monitoring server stopped")
	}
}
