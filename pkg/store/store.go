package store

import (
	"context"
	"time"

	"github.com/wastetrack/wastetrack/pkg/fleet"
)

// VehicleStore is the durable record of each vehicle's last-known
// state. All mutation goes through the ingest reconciler.
type VehicleStore interface {
	Get(ctx context.Context, vehicleID string) (*fleet.Vehicle, error)
	Upsert(ctx context.Context, vehicle *fleet.Vehicle) error
	Query(ctx context.Context, filter VehicleFilter) ([]fleet.Vehicle, error)
}

// HistoryStore is the append-only log of raw position samples. The
// store itself expires samples 30 days after their timestamp.
type HistoryStore interface {
	Append(ctx context.Context, sample fleet.LocationSample) error
	History(ctx context.Context, vehicleID string, from time.Time, to time.Time, limit int64) ([]fleet.LocationSample, error)
}

const MaxHistoryResults = 1000
