package tracker

import (
	"context"
	"testing"

	"github.com/adjust/rmq/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastetrack/wastetrack/pkg/fleet"
)

func TestBatchConsumerAppliesDeliveries(t *testing.T) {
	vehicles := newFakeVehicles(registeredVehicle())
	publisher := &capturePublisher{}
	reconciler := NewReconciler(vehicles, &fakeHistory{}, publisher)
	consumer := NewBatchConsumer(0, reconciler)

	locationDelivery := rmq.NewTestDeliveryString(`{"location":{"vehicleId":"KA01AB1234","latitude":12.98,"longitude":77.60,"speed":18}}`)
	statusDelivery := rmq.NewTestDeliveryString(`{"status":{"vehicleId":"KA01AB1234","status":"collecting","completedStops":5}}`)
	garbageDelivery := rmq.NewTestDeliveryString(`not json`)
	emptyDelivery := rmq.NewTestDeliveryString(`{}`)

	consumer.Consume(rmq.Deliveries{locationDelivery, statusDelivery, garbageDelivery, emptyDelivery})

	vehicle, err := vehicles.Get(context.Background(), "KA01AB1234")
	require.NoError(t, err)
	assert.Equal(t, 12.98, vehicle.CurrentLocation.Latitude)
	assert.Equal(t, fleet.VehicleStatusCollecting, vehicle.Status)
	assert.Equal(t, 5, vehicle.Route.CompletedStops)

	// Bad payloads are logged and skipped, the batch is still acked
	assert.Equal(t, rmq.Acked, locationDelivery.State)
	assert.Equal(t, rmq.Acked, statusDelivery.State)
	assert.Equal(t, rmq.Acked, garbageDelivery.State)
	assert.Equal(t, rmq.Acked, emptyDelivery.State)

	assert.Len(t, publisher.all(), 2)
}
