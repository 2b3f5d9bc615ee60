package store

import (
	"math"

	"github.com/wastetrack/wastetrack/pkg/fleet"
)

type VehicleFilter struct {
	ExcludeStatuses []fleet.VehicleStatus
	Bounds          *BoundingBox
}

// BoundingBox approximates a radius search with degree arithmetic -
// one degree of latitude is ~111km, longitude degrees shrink with
// cos(latitude). Good enough for "roughly nearby", not geofencing.
type BoundingBox struct {
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

func NewBoundingBox(latitude float64, longitude float64, radiusKm float64) BoundingBox {
	latDelta := radiusKm / 111
	lngDelta := radiusKm / (111 * math.Cos(latitude*math.Pi/180))

	return BoundingBox{
		LatMin: latitude - latDelta,
		LatMax: latitude + latDelta,
		LngMin: longitude - lngDelta,
		LngMax: longitude + lngDelta,
	}
}

func (b *BoundingBox) Contains(latitude float64, longitude float64) bool {
	return latitude >= b.LatMin && latitude <= b.LatMax &&
		longitude >= b.LngMin && longitude <= b.LngMax
}

func (f *VehicleFilter) Matches(vehicle *fleet.Vehicle) bool {
	for _, status := range f.ExcludeStatuses {
		if vehicle.Status == status {
			return false
		}
	}

	if f.Bounds != nil && !f.Bounds.Contains(vehicle.CurrentLocation.Latitude, vehicle.CurrentLocation.Longitude) {
		return false
	}

	return true
}
