package simulator

import (
	"time"

	"github.com/wastetrack/wastetrack/pkg/fleet"
)

type demoDriver struct {
	Username string
	Name     string
	Role     string
}

func demoDrivers() []demoDriver {
	return []demoDriver{
		{Username: "john.smith", Name: "John Smith", Role: "driver"},
		{Username: "mike.johnson", Name: "Mike Johnson", Role: "driver"},
		{Username: "sarah.wilson", Name: "Sarah Wilson", Role: "driver"},
	}
}

func demoFleet() []fleet.Vehicle {
	now := time.Now()

	return []fleet.Vehicle{
		{
			VehicleID: "KA01AB1234",
			DriverRef: "john.smith",
			CurrentLocation: fleet.Location{
				Latitude:  12.9716,
				Longitude: 77.5946,
				Timestamp: now,
			},
			Status: fleet.VehicleStatusOnRoute,
			Route: fleet.RouteProgress{
				Ward:       "Ward 12",
				Area:       "Residential Area",
				TotalStops: 30,
			},
			WasteType: fleet.WasteTypeOrganic,
			Capacity:  fleet.Capacity{Current: 0, Maximum: 100},
			Schedule: fleet.Schedule{
				StartTime:        now,
				EstimatedEndTime: now.Add(5 * time.Hour),
			},
			IsActive:             true,
			CreationDateTime:     now,
			ModificationDateTime: now,
		},
		{
			VehicleID: "KA01CD5678",
			DriverRef: "mike.johnson",
			CurrentLocation: fleet.Location{
				Latitude:  12.9800,
				Longitude: 77.6000,
				Timestamp: now,
			},
			Status: fleet.VehicleStatusCollecting,
			Route: fleet.RouteProgress{
				Ward:       "Ward 8",
				Area:       "Commercial Area",
				TotalStops: 20,
			},
			WasteType: fleet.WasteTypeRecyclable,
			Capacity:  fleet.Capacity{Current: 0, Maximum: 100},
			Schedule: fleet.Schedule{
				StartTime:        now,
				EstimatedEndTime: now.Add(4 * time.Hour),
			},
			IsActive:             true,
			CreationDateTime:     now,
			ModificationDateTime: now,
		},
		{
			VehicleID: "KA01EF9012",
			DriverRef: "sarah.wilson",
			CurrentLocation: fleet.Location{
				Latitude:  12.9500,
				Longitude: 77.5800,
				Timestamp: now,
			},
			Status: fleet.VehicleStatusIdle,
			Route: fleet.RouteProgress{
				Ward:       "Ward 5",
				Area:       "Industrial Area",
				TotalStops: 15,
			},
			WasteType: fleet.WasteTypeHazardous,
			Capacity:  fleet.Capacity{Current: 0, Maximum: 100},
			Schedule: fleet.Schedule{
				StartTime:        now,
				EstimatedEndTime: now.Add(6 * time.Hour),
			},
			IsActive:             true,
			CreationDateTime:     now,
			ModificationDateTime: now,
		},
	}
}
