package fleet

import (
	"regexp"
	"strings"
	"time"
)

// Number-plate format used by the fleet registry (eg. KA01AB1234)
var vehicleIDFormat = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{2}[0-9]{4}$`)

type Vehicle struct {
	VehicleID string `json:"vehicleId"`
	DriverRef string `json:"driverRef"`

	CurrentLocation Location `json:"currentLocation"`

	Status VehicleStatus `json:"status"`

	Route    RouteProgress `json:"route"`
	Capacity Capacity      `json:"capacity"`
	Schedule Schedule      `json:"schedule"`

	WasteType WasteType `json:"wasteType"`

	Specifications Specifications `json:"specifications,omitempty"`

	IsActive bool `json:"isActive"`

	CreationDateTime     time.Time `json:"creationDateTime"`
	ModificationDateTime time.Time `json:"modificationDateTime"`
}

type RouteProgress struct {
	Ward           string `json:"ward"`
	Area           string `json:"area"`
	TotalStops     int    `json:"totalStops"`
	CompletedStops int    `json:"completedStops"`
}

type Capacity struct {
	Current int `json:"current"`
	Maximum int `json:"maximum"`
}

type Schedule struct {
	StartTime        time.Time  `json:"startTime"`
	EstimatedEndTime time.Time  `json:"estimatedEndTime"`
	ActualEndTime    *time.Time `json:"actualEndTime,omitempty"`
}

type Specifications struct {
	Model           string     `json:"model,omitempty"`
	Year            int        `json:"year,omitempty"`
	FuelType        string     `json:"fuelType,omitempty"`
	LastMaintenance *time.Time `json:"lastMaintenance,omitempty"`
	NextMaintenance *time.Time `json:"nextMaintenance,omitempty"`
}

func (v *Vehicle) RouteCompletionPercentage() int {
	if v.Route.TotalStops == 0 {
		return 0
	}

	return int(float64(v.Route.CompletedStops)/float64(v.Route.TotalStops)*100 + 0.5)
}

// CanonicalVehicleID uppercases and trims a submitted vehicle identifier.
func CanonicalVehicleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func ValidVehicleID(id string) bool {
	return vehicleIDFormat.MatchString(id)
}
