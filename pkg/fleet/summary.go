package fleet

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// VehicleSummary is the read projection served to dashboards - the
// vehicle's live position plus the resolved driver display name.
type VehicleSummary struct {
	VehicleID  string `json:"vehicleId"`
	DriverName string `json:"driverName"`

	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`

	Status    VehicleStatus `json:"status"`
	WasteType WasteType     `json:"wasteType"`

	Route    RouteProgress `json:"route"`
	Capacity Capacity      `json:"capacity"`
	Schedule Schedule      `json:"schedule"`

	RouteCompletionPercentage int `json:"routeCompletionPercentage"`

	LastUpdate time.Time `json:"lastUpdate"`
}

func NewVehicleSummary(vehicle *Vehicle, driverName string) VehicleSummary {
	summary := VehicleSummary{}
	if err := copier.Copy(&summary, vehicle); err != nil {
		log.Error().Err(err).Str("vehicle", vehicle.VehicleID).Msg("Failed to project vehicle summary")
	}

	summary.DriverName = driverName
	summary.Latitude = vehicle.CurrentLocation.Latitude
	summary.Longitude = vehicle.CurrentLocation.Longitude
	summary.RouteCompletionPercentage = vehicle.RouteCompletionPercentage()
	summary.LastUpdate = vehicle.CurrentLocation.Timestamp

	return summary
}
