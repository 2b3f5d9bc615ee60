package tracker

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

const QueueName = "tracking-events"

// DriverUpdate is the queue payload produced by bulk driver feeds and
// the simulator. Exactly one of Location or Status is set.
type DriverUpdate struct {
	Location *LocationUpdate `json:"location,omitempty"`
	Status   *StatusUpdate   `json:"status,omitempty"`
}

type BatchConsumer struct {
	id int

	reconciler *Reconciler
}

func NewBatchConsumer(id int, reconciler *Reconciler) *BatchConsumer {
	return &BatchConsumer{id: id, reconciler: reconciler}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		var driverUpdate *DriverUpdate
		if err := json.Unmarshal([]byte(payload), &driverUpdate); err != nil {
			log.Error().Err(err).Msg("Failed to decode driver update")
			continue
		}

		switch {
		case driverUpdate.Location != nil:
			_, err := consumer.reconciler.ApplyLocationUpdate(context.Background(), *driverUpdate.Location)
			if err != nil {
				log.Error().Err(err).Str("vehicle", driverUpdate.Location.VehicleID).Msg("Failed to apply location update")
			}
		case driverUpdate.Status != nil:
			_, _, err := consumer.reconciler.ApplyStatusUpdate(context.Background(), *driverUpdate.Status)
			if err != nil {
				log.Error().Err(err).Str("vehicle", driverUpdate.Status.VehicleID).Msg("Failed to apply status update")
			}
		default:
			log.Error().Msg("Driver update with no body")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack driver update batch")
		}
	}
}
