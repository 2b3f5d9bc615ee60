package snapshot

import (
	"time"

	"github.com/wastetrack/wastetrack/pkg/fleet"
)

// fallbackSummaries is the well-defined dataset served while the store
// is down, so the live map keeps rendering something sensible instead
// of an empty world.
func fallbackSummaries() []fleet.VehicleSummary {
	now := time.Now()

	return []fleet.VehicleSummary{
		{
			VehicleID:  "KA01AB1234",
			DriverName: "John Smith",
			Latitude:   12.9716,
			Longitude:  77.5946,
			Status:     fleet.VehicleStatusOnRoute,
			WasteType:  fleet.WasteTypeOrganic,
			Route: fleet.RouteProgress{
				Ward:           "Ward 12",
				Area:           "Residential Area",
				TotalStops:     30,
				CompletedStops: 24,
			},
			Capacity: fleet.Capacity{Current: 65, Maximum: 100},
			Schedule: fleet.Schedule{
				StartTime:        now,
				EstimatedEndTime: now.Add(5 * time.Hour),
			},
			RouteCompletionPercentage: 80,
			LastUpdate:                now,
		},
		{
			VehicleID:  "KA01CD5678",
			DriverName: "Mike Johnson",
			Latitude:   12.9800,
			Longitude:  77.6000,
			Status:     fleet.VehicleStatusCollecting,
			WasteType:  fleet.WasteTypeRecyclable,
			Route: fleet.RouteProgress{
				Ward:           "Ward 8",
				Area:           "Commercial Area",
				TotalStops:     20,
				CompletedStops: 12,
			},
			Capacity: fleet.Capacity{Current: 40, Maximum: 100},
			Schedule: fleet.Schedule{
				StartTime:        now,
				EstimatedEndTime: now.Add(4 * time.Hour),
			},
			RouteCompletionPercentage: 60,
			LastUpdate:                now,
		},
		{
			VehicleID:  "KA01EF9012",
			DriverName: "Sarah Wilson",
			Latitude:   12.9500,
			Longitude:  77.5800,
			Status:     fleet.VehicleStatusCompleted,
			WasteType:  fleet.WasteTypeHazardous,
			Route: fleet.RouteProgress{
				Ward:           "Ward 5",
				Area:           "Industrial Area",
				TotalStops:     15,
				CompletedStops: 15,
			},
			Capacity: fleet.Capacity{Current: 90, Maximum: 100},
			Schedule: fleet.Schedule{
				StartTime:        now.Add(-6 * time.Hour),
				EstimatedEndTime: now.Add(-1 * time.Hour),
			},
			RouteCompletionPercentage: 100,
			LastUpdate:                now,
		},
	}
}
