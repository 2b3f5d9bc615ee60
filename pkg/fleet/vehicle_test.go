package fleet

import "testing"

func TestCanonicalVehicleID(t *testing.T) {
	if got := CanonicalVehicleID(" ka01ab1234 "); got != "KA01AB1234" {
		t.Fatalf("expected KA01AB1234 got %s", got)
	}
}

func TestValidVehicleID(t *testing.T) {
	valid := []string{"KA01AB1234", "MH12XY0001"}
	for _, id := range valid {
		if !ValidVehicleID(id) {
			t.Fatalf("expected %s to be valid", id)
		}
	}

	invalid := []string{"", "KA01AB123", "1234ABKA01", "ka01ab1234"}
	for _, id := range invalid {
		if ValidVehicleID(id) {
			t.Fatalf("expected %s to be invalid", id)
		}
	}
}

func TestValidCoordinates(t *testing.T) {
	if !ValidCoordinates(12.9716, 77.5946) {
		t.Fatal("expected coordinates to be valid")
	}
	if ValidCoordinates(90.0001, 0) {
		t.Fatal("expected latitude above 90 to be invalid")
	}
	if ValidCoordinates(0, -180.0001) {
		t.Fatal("expected longitude below -180 to be invalid")
	}
}

func TestRouteCompletionPercentage(t *testing.T) {
	vehicle := Vehicle{
		Route: RouteProgress{TotalStops: 30, CompletedStops: 24},
	}
	if got := vehicle.RouteCompletionPercentage(); got != 80 {
		t.Fatalf("expected 80 got %d", got)
	}

	empty := Vehicle{}
	if got := empty.RouteCompletionPercentage(); got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range []VehicleStatus{
		VehicleStatusIdle, VehicleStatusOnRoute, VehicleStatusCollecting,
		VehicleStatusCompleted, VehicleStatusMaintenance, VehicleStatusEmergency,
	} {
		if !status.Valid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}

	if VehicleStatus("driving").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestVehicleSummaryProjection(t *testing.T) {
	vehicle := Vehicle{
		VehicleID: "KA01AB1234",
		CurrentLocation: Location{
			Latitude:  12.9716,
			Longitude: 77.5946,
		},
		Status:    VehicleStatusOnRoute,
		WasteType: WasteTypeOrganic,
		Route:     RouteProgress{Ward: "Ward 12", TotalStops: 30, CompletedStops: 15},
	}

	summary := NewVehicleSummary(&vehicle, "John Smith")

	if summary.VehicleID != "KA01AB1234" {
		t.Fatalf("unexpected vehicleId %s", summary.VehicleID)
	}
	if summary.DriverName != "John Smith" {
		t.Fatalf("unexpected driverName %s", summary.DriverName)
	}
	if summary.Latitude != 12.9716 || summary.Longitude != 77.5946 {
		t.Fatalf("unexpected position %f %f", summary.Latitude, summary.Longitude)
	}
	if summary.RouteCompletionPercentage != 50 {
		t.Fatalf("unexpected completion %d", summary.RouteCompletionPercentage)
	}
	if summary.Route.Ward != "Ward 12" {
		t.Fatalf("unexpected ward %s", summary.Route.Ward)
	}
}
