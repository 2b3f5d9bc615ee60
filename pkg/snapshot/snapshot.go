package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wastetrack/wastetrack/pkg/directory"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"github.com/wastetrack/wastetrack/pkg/store"
)

const unknownDriverName = "Unknown"

// Result carries the summaries plus whether they came from the
// designated fallback dataset because the store was unreachable.
type Result struct {
	Summaries []fleet.VehicleSummary

	Fallback bool
	Reason   string
}

// Service answers pull-based reads over vehicle state, both for
// initial page loads and for clients that missed a push.
type Service struct {
	vehicles  store.VehicleStore
	directory directory.Directory
}

func NewService(vehicles store.VehicleStore, d directory.Directory) *Service {
	return &Service{
		vehicles:  vehicles,
		directory: d,
	}
}

// ListActive returns summaries of all vehicles outside the excluded
// statuses. A store outage degrades to the fallback dataset, never to
// an error.
func (s *Service) ListActive(ctx context.Context, excludeStatuses []fleet.VehicleStatus) (Result, error) {
	vehicles, err := s.vehicles.Query(ctx, store.VehicleFilter{ExcludeStatuses: excludeStatuses})
	if err != nil {
		if errors.Is(err, fleet.ErrUnavailable) {
			log.Warn().Err(err).Msg("Store unavailable, serving fallback vehicle list")
			return fallbackResult(excludeStatuses, nil), nil
		}

		return Result{}, err
	}

	return Result{Summaries: s.project(ctx, vehicles)}, nil
}

// GetOne returns a single vehicle's summary.
func (s *Service) GetOne(ctx context.Context, vehicleID string) (*fleet.VehicleSummary, error) {
	vehicleID = fleet.CanonicalVehicleID(vehicleID)

	vehicle, err := s.vehicles.Get(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, fleet.ErrUnavailable) {
			log.Warn().Err(err).Str("vehicle", vehicleID).Msg("Store unavailable, checking fallback dataset")
			for _, summary := range fallbackSummaries() {
				if summary.VehicleID == vehicleID {
					return &summary, nil
				}
			}

			return nil, fleet.ErrNotFound
		}

		return nil, err
	}

	summary := s.summarize(ctx, vehicle)

	return &summary, nil
}

// FindNearby returns vehicles within roughly radiusKm of the point,
// using the store's bounding box approximation.
func (s *Service) FindNearby(ctx context.Context, latitude float64, longitude float64, radiusKm float64) (Result, error) {
	if !fleet.ValidCoordinates(latitude, longitude) {
		return Result{}, fmt.Errorf("%w: coordinates out of range", fleet.ErrInvalidInput)
	}
	if radiusKm <= 0 {
		radiusKm = 5
	}

	bounds := store.NewBoundingBox(latitude, longitude, radiusKm)

	vehicles, err := s.vehicles.Query(ctx, store.VehicleFilter{Bounds: &bounds})
	if err != nil {
		if errors.Is(err, fleet.ErrUnavailable) {
			log.Warn().Err(err).Msg("Store unavailable, serving fallback nearby list")
			return fallbackResult(nil, &bounds), nil
		}

		return Result{}, err
	}

	return Result{Summaries: s.project(ctx, vehicles)}, nil
}

func (s *Service) project(ctx context.Context, vehicles []fleet.Vehicle) []fleet.VehicleSummary {
	summaries := []fleet.VehicleSummary{}

	for i := range vehicles {
		summaries = append(summaries, s.summarize(ctx, &vehicles[i]))
	}

	return summaries
}

func (s *Service) summarize(ctx context.Context, vehicle *fleet.Vehicle) fleet.VehicleSummary {
	driverName, err := s.directory.DisplayName(ctx, vehicle.DriverRef)
	if err != nil {
		// A missing or unreachable directory never fails the read
		driverName = unknownDriverName
	}

	return fleet.NewVehicleSummary(vehicle, driverName)
}

func fallbackResult(excludeStatuses []fleet.VehicleStatus, bounds *store.BoundingBox) Result {
	summaries := []fleet.VehicleSummary{}

	for _, summary := range fallbackSummaries() {
		excluded := false
		for _, status := range excludeStatuses {
			if summary.Status == status {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		if bounds != nil && !bounds.Contains(summary.Latitude, summary.Longitude) {
			continue
		}

		summaries = append(summaries, summary)
	}

	return Result{
		Summaries: summaries,
		Fallback:  true,
		Reason:    "store unavailable",
	}
}
