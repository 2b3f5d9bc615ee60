package fleet

import "time"

type EventType string

const (
	EventTypeVehicleLocationUpdate EventType = "vehicleLocationUpdate"
	EventTypeVehicleStatusUpdate   EventType = "vehicleStatusUpdate"
	EventTypeEmergencyAlert        EventType = "emergencyAlert"
)

// TrackedEvent is the server-validated, server-timestamped result of an
// ingest operation and the unit handed to the broadcast fanout.
type TrackedEvent struct {
	Type      EventType `json:"type"`
	VehicleID string    `json:"vehicleId"`

	Body any `json:"body"`

	RecordedAt time.Time `json:"recordedAt"`

	// Persisted is false when the durable store was unreachable and the
	// event was broadcast without being written.
	Persisted bool `json:"persisted"`
}

type LocationUpdateBody struct {
	VehicleID string    `json:"vehicleId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Speed     float64   `json:"speed"`
	Heading   float64   `json:"heading"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

type StatusUpdateBody struct {
	VehicleID      string        `json:"vehicleId"`
	Status         VehicleStatus `json:"status"`
	CompletedStops *int          `json:"completedStops,omitempty"`
}

type EmergencyAlertBody struct {
	VehicleID string    `json:"vehicleId"`
	Message   string    `json:"message"`
	Latitude  float64   `json:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
