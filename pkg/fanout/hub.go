package fanout

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/wastetrack/wastetrack/pkg/fleet"
)

const observerBufferSize = 64

// Hub fans tracked events out to connected observers. An observer is
// either in the all-vehicles audience or scoped to a single vehicle's
// group; emergency alerts reach every observer regardless of scope.
//
// Delivery is non-blocking per observer - a slow consumer drops events
// rather than stalling the publisher. Per-vehicle ordering holds
// because publishes for one vehicle are serialized upstream and each
// observer receives through a single channel.
type Hub struct {
	mu sync.RWMutex

	all    map[*Observer]struct{}
	groups map[string]map[*Observer]struct{}

	closed bool
}

type Observer struct {
	ID string

	vehicleID string
	events    chan fleet.TrackedEvent
}

// Events is the observer's receive channel. It is closed on
// Unsubscribe and on Hub Close.
func (o *Observer) Events() <-chan fleet.TrackedEvent {
	return o.events
}

func (o *Observer) VehicleID() string {
	return o.vehicleID
}

func NewHub() *Hub {
	return &Hub{
		all:    map[*Observer]struct{}{},
		groups: map[string]map[*Observer]struct{}{},
	}
}

// Subscribe registers an observer. An empty vehicleID joins the
// all-vehicles audience.
func (h *Hub) Subscribe(observerID string, vehicleID string) *Observer {
	observer := &Observer{
		ID:        observerID,
		vehicleID: vehicleID,
		events:    make(chan fleet.TrackedEvent, observerBufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(observer.events)
		return observer
	}

	h.attach(observer)

	return observer
}

// Rescope moves an observer into a vehicle's group (or back to the
// all-vehicles audience with an empty vehicleID). Pending events on the
// observer's channel are unaffected.
func (h *Hub) Rescope(observer *Observer, vehicleID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.detach(observer)
	observer.vehicleID = vehicleID
	h.attach(observer)
}

func (h *Hub) Unsubscribe(observer *Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.all[observer]; !exists {
		if _, exists := h.groups[observer.vehicleID][observer]; !exists {
			return
		}
	}

	h.detach(observer)

	if !h.closed {
		close(observer.events)
	}
}

// Publish delivers the event to the all-vehicles audience and to the
// event's vehicle group. Emergency alerts go to everyone.
func (h *Hub) Publish(event fleet.TrackedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	if event.Type == fleet.EventTypeEmergencyAlert {
		for observer := range h.all {
			h.deliver(observer, event)
		}
		for _, group := range h.groups {
			for observer := range group {
				h.deliver(observer, event)
			}
		}

		return
	}

	for observer := range h.all {
		h.deliver(observer, event)
	}

	for observer := range h.groups[event.VehicleID] {
		h.deliver(observer, event)
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for observer := range h.all {
		close(observer.events)
	}
	for _, group := range h.groups {
		for observer := range group {
			close(observer.events)
		}
	}

	h.all = map[*Observer]struct{}{}
	h.groups = map[string]map[*Observer]struct{}{}
}

func (h *Hub) ObserverCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := len(h.all)
	for _, group := range h.groups {
		count += len(group)
	}

	return count
}

func (h *Hub) attach(observer *Observer) {
	if observer.vehicleID == "" {
		h.all[observer] = struct{}{}
		return
	}

	group := h.groups[observer.vehicleID]
	if group == nil {
		group = map[*Observer]struct{}{}
		h.groups[observer.vehicleID] = group
	}
	group[observer] = struct{}{}
}

func (h *Hub) detach(observer *Observer) {
	if observer.vehicleID == "" {
		delete(h.all, observer)
		return
	}

	group := h.groups[observer.vehicleID]
	delete(group, observer)
	if len(group) == 0 {
		delete(h.groups, observer.vehicleID)
	}
}

func (h *Hub) deliver(observer *Observer, event fleet.TrackedEvent) {
	select {
	case observer.events <- event:
	default:
		log.Debug().Str("observer", observer.ID).Str("vehicle", event.VehicleID).Msg("Dropped event for slow observer")
	}
}
