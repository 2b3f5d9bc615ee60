package fleet

type VehicleStatus string

const (
	VehicleStatusIdle        VehicleStatus = "idle"
	VehicleStatusOnRoute     VehicleStatus = "on_route"
	VehicleStatusCollecting  VehicleStatus = "collecting"
	VehicleStatusCompleted   VehicleStatus = "completed"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusEmergency   VehicleStatus = "emergency"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusIdle, VehicleStatusOnRoute, VehicleStatusCollecting,
		VehicleStatusCompleted, VehicleStatusMaintenance, VehicleStatusEmergency:
		return true
	}

	return false
}

type WasteType string

const (
	WasteTypeOrganic    WasteType = "organic"
	WasteTypeRecyclable WasteType = "recyclable"
	WasteTypeHazardous  WasteType = "hazardous"
	WasteTypeGeneral    WasteType = "general"
)

func (w WasteType) Valid() bool {
	switch w {
	case WasteTypeOrganic, WasteTypeRecyclable, WasteTypeHazardous, WasteTypeGeneral:
		return true
	}

	return false
}
