package fanout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastetrack/wastetrack/pkg/fleet"
)

func locationEvent(vehicleID string, sequence int) fleet.TrackedEvent {
	return fleet.TrackedEvent{
		Type:      fleet.EventTypeVehicleLocationUpdate,
		VehicleID: vehicleID,
		Body:      sequence,
	}
}

func TestHubPublishToAllAudience(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	observer := hub.Subscribe("obs-1", "")

	hub.Publish(locationEvent("KA01AB1234", 1))

	event := <-observer.Events()
	assert.Equal(t, "KA01AB1234", event.VehicleID)
}

func TestHubVehicleGroupScoping(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	scoped := hub.Subscribe("obs-1", "KA01AB1234")
	other := hub.Subscribe("obs-2", "KA01CD5678")

	hub.Publish(locationEvent("KA01AB1234", 1))

	event := <-scoped.Events()
	assert.Equal(t, "KA01AB1234", event.VehicleID)

	select {
	case unexpected := <-other.Events():
		t.Fatalf("observer in another group received %v", unexpected)
	default:
	}
}

func TestHubPerVehicleOrdering(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	observer := hub.Subscribe("obs-1", "KA01AB1234")

	for i := 1; i <= 10; i++ {
		hub.Publish(locationEvent("KA01AB1234", i))
	}

	for i := 1; i <= 10; i++ {
		event := <-observer.Events()
		require.Equal(t, i, event.Body)
	}
}

func TestHubEmergencyReachesEveryObserver(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	all := hub.Subscribe("obs-1", "")
	scopedElsewhere := hub.Subscribe("obs-2", "KA01CD5678")

	hub.Publish(fleet.TrackedEvent{
		Type:      fleet.EventTypeEmergencyAlert,
		VehicleID: "KA01AB1234",
	})

	event := <-all.Events()
	assert.Equal(t, fleet.EventTypeEmergencyAlert, event.Type)

	event = <-scopedElsewhere.Events()
	assert.Equal(t, fleet.EventTypeEmergencyAlert, event.Type)
}

func TestHubSlowObserverDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	slow := hub.Subscribe("obs-1", "KA01AB1234")
	_ = slow // never drained

	// Well past the observer buffer; must not deadlock
	for i := 0; i < observerBufferSize*3; i++ {
		hub.Publish(locationEvent("KA01AB1234", i))
	}
}

func TestHubRescope(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	observer := hub.Subscribe("obs-1", "")

	hub.Rescope(observer, "KA01AB1234")

	hub.Publish(locationEvent("KA01CD5678", 1))
	select {
	case unexpected := <-observer.Events():
		t.Fatalf("rescoped observer received %v", unexpected)
	default:
	}

	hub.Publish(locationEvent("KA01AB1234", 2))
	event := <-observer.Events()
	assert.Equal(t, "KA01AB1234", event.VehicleID)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	observer := hub.Subscribe("obs-1", "KA01AB1234")
	hub.Unsubscribe(observer)

	_, open := <-observer.Events()
	assert.False(t, open)

	// Publishing after unsubscribe must not panic
	hub.Publish(locationEvent("KA01AB1234", 1))

	// A second unsubscribe is a no-op
	hub.Unsubscribe(observer)
}

func TestHubClose(t *testing.T) {
	hub := NewHub()

	first := hub.Subscribe("obs-1", "")
	second := hub.Subscribe("obs-2", "KA01AB1234")

	hub.Close()

	_, open := <-first.Events()
	assert.False(t, open)
	_, open = <-second.Events()
	assert.False(t, open)

	assert.Equal(t, 0, hub.ObserverCount())
}
