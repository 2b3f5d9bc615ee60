package fleet

import "time"

// LocationSample is a single raw position report, kept in the
// location_history collection for 30 days after its timestamp.
type LocationSample struct {
	VehicleID string `json:"vehicleId"`
	DriverRef string `json:"driverRef"`

	Location SampleLocation `json:"location"`

	Speed    float64 `json:"speed"`
	Heading  float64 `json:"heading"`
	Accuracy float64 `json:"accuracy"`

	Timestamp time.Time `json:"timestamp"`
}

type SampleLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const LocationHistoryRetention = 30 * 24 * time.Hour
