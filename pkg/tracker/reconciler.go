package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"github.com/wastetrack/wastetrack/pkg/store"
)

// Publisher receives every normalized event the reconciler produces,
// including ones that could not be durably written.
type Publisher interface {
	Publish(event fleet.TrackedEvent)
}

type LocationUpdate struct {
	VehicleID string  `json:"vehicleId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
	Accuracy  float64 `json:"accuracy"`
}

type StatusUpdate struct {
	VehicleID      string              `json:"vehicleId"`
	Status         fleet.VehicleStatus `json:"status"`
	CompletedStops *int                `json:"completedStops,omitempty"`
}

// Reconciler validates driver updates and applies them to the vehicle
// state store and location history log, then hands the normalized
// event to the fanout. Updates for one vehicle are serialized; distinct
// vehicles never contend.
type Reconciler struct {
	vehicles store.VehicleStore
	history  store.HistoryStore

	publisher Publisher

	locks *keyedMutex
}

func NewReconciler(vehicles store.VehicleStore, history store.HistoryStore, publisher Publisher) *Reconciler {
	return &Reconciler{
		vehicles:  vehicles,
		history:   history,
		publisher: publisher,
		locks:     newKeyedMutex(),
	}
}

// ApplyLocationUpdate upserts the vehicle's current location and
// appends a history sample. When the store is unreachable the event is
// still produced and broadcast, flagged unpersisted.
func (r *Reconciler) ApplyLocationUpdate(ctx context.Context, update LocationUpdate) (*fleet.TrackedEvent, error) {
	vehicleID := fleet.CanonicalVehicleID(update.VehicleID)

	if vehicleID == "" {
		return nil, fmt.Errorf("%w: vehicleId is required", fleet.ErrInvalidInput)
	}
	if !fleet.ValidVehicleID(vehicleID) {
		return nil, fmt.Errorf("%w: malformed vehicleId %q", fleet.ErrInvalidInput, vehicleID)
	}
	if !fleet.ValidCoordinates(update.Latitude, update.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", fleet.ErrInvalidInput)
	}
	if update.Speed < 0 || update.Accuracy < 0 {
		return nil, fmt.Errorf("%w: speed and accuracy must not be negative", fleet.ErrInvalidInput)
	}
	if update.Heading < 0 || update.Heading >= 360 {
		update.Heading = normalizeHeading(update.Heading)
	}

	r.locks.Lock(vehicleID)
	defer r.locks.Unlock(vehicleID)

	// Client timestamps are not trusted for ordering
	recordedAt := time.Now()

	event := &fleet.TrackedEvent{
		Type:      fleet.EventTypeVehicleLocationUpdate,
		VehicleID: vehicleID,
		Body: fleet.LocationUpdateBody{
			VehicleID: vehicleID,
			Latitude:  update.Latitude,
			Longitude: update.Longitude,
			Speed:     update.Speed,
			Heading:   update.Heading,
			Accuracy:  update.Accuracy,
			Timestamp: recordedAt,
		},
		RecordedAt: recordedAt,
	}

	vehicle, err := r.vehicles.Get(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, fleet.ErrNotFound) {
			// Vehicle registration is a separate concern - a location
			// update never creates a phantom vehicle
			return nil, fleet.ErrNotFound
		}
		if errors.Is(err, fleet.ErrUnavailable) {
			log.Warn().Str("vehicle", vehicleID).Msg("Store unavailable, broadcasting location without persisting")
			r.publisher.Publish(*event)
			return event, nil
		}

		return nil, err
	}

	vehicle.CurrentLocation = fleet.Location{
		Latitude:  update.Latitude,
		Longitude: update.Longitude,
		Timestamp: recordedAt,
		Accuracy:  update.Accuracy,
	}
	vehicle.ModificationDateTime = recordedAt

	if err := r.vehicles.Upsert(ctx, vehicle); err != nil {
		if errors.Is(err, fleet.ErrUnavailable) {
			log.Warn().Str("vehicle", vehicleID).Msg("Store unavailable, broadcasting location without persisting")
			r.publisher.Publish(*event)
			return event, nil
		}

		return nil, err
	}

	event.Persisted = true

	sample := fleet.LocationSample{
		VehicleID: vehicleID,
		DriverRef: vehicle.DriverRef,
		Location: fleet.SampleLocation{
			Latitude:  update.Latitude,
			Longitude: update.Longitude,
		},
		Speed:     update.Speed,
		Heading:   update.Heading,
		Accuracy:  update.Accuracy,
		Timestamp: recordedAt,
	}
	if err := r.history.Append(ctx, sample); err != nil {
		log.Error().Err(err).Str("vehicle", vehicleID).Msg("Failed to append location history")
	}

	r.publisher.Publish(*event)

	return event, nil
}

// ApplyStatusUpdate changes the vehicle's status and route progress.
// Completed stops are clamped to the route's total; the transition into
// completed stamps the schedule's actual end time exactly once.
func (r *Reconciler) ApplyStatusUpdate(ctx context.Context, update StatusUpdate) (*fleet.TrackedEvent, *fleet.Vehicle, error) {
	vehicleID := fleet.CanonicalVehicleID(update.VehicleID)

	if vehicleID == "" {
		return nil, nil, fmt.Errorf("%w: vehicleId is required", fleet.ErrInvalidInput)
	}
	if !fleet.ValidVehicleID(vehicleID) {
		return nil, nil, fmt.Errorf("%w: malformed vehicleId %q", fleet.ErrInvalidInput, vehicleID)
	}
	if !update.Status.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown status %q", fleet.ErrInvalidInput, update.Status)
	}
	if update.CompletedStops != nil && *update.CompletedStops < 0 {
		return nil, nil, fmt.Errorf("%w: completedStops must not be negative", fleet.ErrInvalidInput)
	}

	r.locks.Lock(vehicleID)
	defer r.locks.Unlock(vehicleID)

	recordedAt := time.Now()

	event := &fleet.TrackedEvent{
		Type:      fleet.EventTypeVehicleStatusUpdate,
		VehicleID: vehicleID,
		Body: fleet.StatusUpdateBody{
			VehicleID:      vehicleID,
			Status:         update.Status,
			CompletedStops: update.CompletedStops,
		},
		RecordedAt: recordedAt,
	}

	vehicle, err := r.vehicles.Get(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, fleet.ErrNotFound) {
			return nil, nil, fleet.ErrNotFound
		}
		if errors.Is(err, fleet.ErrUnavailable) {
			log.Warn().Str("vehicle", vehicleID).Msg("Store unavailable, broadcasting status without persisting")
			r.publisher.Publish(*event)
			return event, nil, nil
		}

		return nil, nil, err
	}

	previousStatus := vehicle.Status
	vehicle.Status = update.Status

	if update.CompletedStops != nil {
		completedStops := *update.CompletedStops
		if completedStops > vehicle.Route.TotalStops {
			completedStops = vehicle.Route.TotalStops
		}
		vehicle.Route.CompletedStops = completedStops

		// Broadcast the clamped value, not the raw request
		event.Body = fleet.StatusUpdateBody{
			VehicleID:      vehicleID,
			Status:         update.Status,
			CompletedStops: &completedStops,
		}
	}

	if vehicle.Capacity.Current > vehicle.Capacity.Maximum {
		vehicle.Capacity.Current = vehicle.Capacity.Maximum
	}

	if update.Status == fleet.VehicleStatusCompleted && previousStatus != fleet.VehicleStatusCompleted {
		endTime := recordedAt
		vehicle.Schedule.ActualEndTime = &endTime
	}

	vehicle.ModificationDateTime = recordedAt

	if err := r.vehicles.Upsert(ctx, vehicle); err != nil {
		if errors.Is(err, fleet.ErrUnavailable) {
			log.Warn().Str("vehicle", vehicleID).Msg("Store unavailable, broadcasting status without persisting")
			r.publisher.Publish(*event)
			return event, nil, nil
		}

		return nil, nil, err
	}

	event.Persisted = true

	r.publisher.Publish(*event)

	return event, vehicle, nil
}

func normalizeHeading(heading float64) float64 {
	heading = heading - 360*float64(int(heading/360))
	if heading < 0 {
		heading += 360
	}

	return heading
}
