package snapshot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"github.com/wastetrack/wastetrack/pkg/store"
)

type fakeVehicles struct {
	vehicles    []fleet.Vehicle
	unavailable bool
}

func (s *fakeVehicles) Get(ctx context.Context, vehicleID string) (*fleet.Vehicle, error) {
	if s.unavailable {
		return nil, fmt.Errorf("%w: connection refused", fleet.ErrUnavailable)
	}

	for i := range s.vehicles {
		if s.vehicles[i].VehicleID == vehicleID {
			return &s.vehicles[i], nil
		}
	}

	return nil, fleet.ErrNotFound
}

func (s *fakeVehicles) Upsert(ctx context.Context, vehicle *fleet.Vehicle) error {
	return nil
}

func (s *fakeVehicles) Query(ctx context.Context, filter store.VehicleFilter) ([]fleet.Vehicle, error) {
	if s.unavailable {
		return nil, fmt.Errorf("%w: connection refused", fleet.ErrUnavailable)
	}

	var matched []fleet.Vehicle
	for i := range s.vehicles {
		if filter.Matches(&s.vehicles[i]) {
			matched = append(matched, s.vehicles[i])
		}
	}

	return matched, nil
}

type fakeDirectory struct {
	names map[string]string
}

func (d *fakeDirectory) DisplayName(ctx context.Context, driverRef string) (string, error) {
	name, exists := d.names[driverRef]
	if !exists {
		return "", fleet.ErrNotFound
	}

	return name, nil
}

func testFleet() []fleet.Vehicle {
	return []fleet.Vehicle{
		{
			VehicleID: "KA01AB1234",
			DriverRef: "john.smith",
			Status:    fleet.VehicleStatusOnRoute,
			CurrentLocation: fleet.Location{
				Latitude:  12.9716,
				Longitude: 77.5946,
				Timestamp: time.Now(),
			},
			Route:     fleet.RouteProgress{Ward: "Ward 12", TotalStops: 30, CompletedStops: 15},
			WasteType: fleet.WasteTypeOrganic,
		},
		{
			VehicleID: "KA01CD5678",
			DriverRef: "mike.johnson",
			Status:    fleet.VehicleStatusMaintenance,
			CurrentLocation: fleet.Location{
				Latitude:  12.9800,
				Longitude: 77.6000,
				Timestamp: time.Now(),
			},
			WasteType: fleet.WasteTypeRecyclable,
		},
	}
}

func TestListActiveExcludesStatuses(t *testing.T) {
	service := NewService(
		&fakeVehicles{vehicles: testFleet()},
		&fakeDirectory{names: map[string]string{"john.smith": "John Smith"}},
	)

	result, err := service.ListActive(context.Background(), []fleet.VehicleStatus{fleet.VehicleStatusMaintenance})
	require.NoError(t, err)

	assert.False(t, result.Fallback)
	require.Len(t, result.Summaries, 1)
	assert.Equal(t, "KA01AB1234", result.Summaries[0].VehicleID)
	assert.Equal(t, "John Smith", result.Summaries[0].DriverName)
	assert.Equal(t, 50, result.Summaries[0].RouteCompletionPercentage)
}

func TestListActiveUnknownDriverGetsPlaceholder(t *testing.T) {
	service := NewService(&fakeVehicles{vehicles: testFleet()}, &fakeDirectory{})

	result, err := service.ListActive(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Summaries, 2)

	for _, summary := range result.Summaries {
		assert.Equal(t, "Unknown", summary.DriverName)
	}
}

func TestListActiveFallsBackWhenStoreDown(t *testing.T) {
	service := NewService(&fakeVehicles{unavailable: true}, &fakeDirectory{})

	result, err := service.ListActive(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Equal(t, "store unavailable", result.Reason)
	require.Len(t, result.Summaries, 3)
	assert.Equal(t, "KA01AB1234", result.Summaries[0].VehicleID)
	assert.Equal(t, "John Smith", result.Summaries[0].DriverName)
}

func TestListActiveFallbackStillExcludesStatuses(t *testing.T) {
	service := NewService(&fakeVehicles{unavailable: true}, &fakeDirectory{})

	result, err := service.ListActive(context.Background(), []fleet.VehicleStatus{fleet.VehicleStatusCompleted})
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	require.Len(t, result.Summaries, 2)
	for _, summary := range result.Summaries {
		assert.NotEqual(t, fleet.VehicleStatusCompleted, summary.Status)
	}
}

func TestGetOneCanonicalizesID(t *testing.T) {
	service := NewService(
		&fakeVehicles{vehicles: testFleet()},
		&fakeDirectory{names: map[string]string{"john.smith": "John Smith"}},
	)

	summary, err := service.GetOne(context.Background(), " ka01ab1234 ")
	require.NoError(t, err)
	assert.Equal(t, "KA01AB1234", summary.VehicleID)
	assert.Equal(t, "John Smith", summary.DriverName)
}

func TestGetOneNotFound(t *testing.T) {
	service := NewService(&fakeVehicles{vehicles: testFleet()}, &fakeDirectory{})

	_, err := service.GetOne(context.Background(), "KA99ZZ9999")
	assert.ErrorIs(t, err, fleet.ErrNotFound)
}

func TestGetOneFallsBackWhenStoreDown(t *testing.T) {
	service := NewService(&fakeVehicles{unavailable: true}, &fakeDirectory{})

	summary, err := service.GetOne(context.Background(), "KA01CD5678")
	require.NoError(t, err)
	assert.Equal(t, "Mike Johnson", summary.DriverName)

	_, err = service.GetOne(context.Background(), "KA99ZZ9999")
	assert.ErrorIs(t, err, fleet.ErrNotFound)
}

func TestFindNearby(t *testing.T) {
	service := NewService(
		&fakeVehicles{vehicles: testFleet()},
		&fakeDirectory{names: map[string]string{"john.smith": "John Smith"}},
	)

	// Both test vehicles sit within a couple of kilometres of central
	// Bengaluru, so a 5km default radius finds them
	result, err := service.FindNearby(context.Background(), 12.9716, 77.5946, 0)
	require.NoError(t, err)
	assert.Len(t, result.Summaries, 2)

	// A search on the other side of the planet finds nothing
	result, err = service.FindNearby(context.Background(), -33.8688, 151.2093, 5)
	require.NoError(t, err)
	assert.Empty(t, result.Summaries)
}

func TestFindNearbyRejectsBadCoordinates(t *testing.T) {
	service := NewService(&fakeVehicles{vehicles: testFleet()}, &fakeDirectory{})

	_, err := service.FindNearby(context.Background(), 120, 77.5946, 5)
	assert.ErrorIs(t, err, fleet.ErrInvalidInput)
}

func TestFindNearbyFallsBackWithinBounds(t *testing.T) {
	service := NewService(&fakeVehicles{unavailable: true}, &fakeDirectory{})

	result, err := service.FindNearby(context.Background(), 12.9716, 77.5946, 2)
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	require.Len(t, result.Summaries, 2)
	for _, summary := range result.Summaries {
		assert.NotEqual(t, "KA01EF9012", summary.VehicleID)
	}
}
