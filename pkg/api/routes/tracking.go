package routes

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"github.com/wastetrack/wastetrack/pkg/snapshot"
	"github.com/wastetrack/wastetrack/pkg/store"
	"github.com/wastetrack/wastetrack/pkg/tracker"
)

type TrackingDependencies struct {
	Reconciler *tracker.Reconciler
	Snapshot   *snapshot.Service

	Vehicles store.VehicleStore
	History  store.HistoryStore
}

func TrackingRouter(router fiber.Router, deps TrackingDependencies) {
	router.Get("/vehicles", listVehicles(deps))
	router.Get("/vehicles/:vehicleId", getVehicle(deps))
	router.Post("/update-location", updateLocation(deps))
	router.Post("/update-status", updateStatus(deps))
	router.Get("/history/:vehicleId", vehicleHistory(deps))
	router.Get("/nearby", nearbyVehicles(deps))
}

func listVehicles(deps TrackingDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Maintenance vehicles are hidden from the live map by default
		excludeStatuses := []fleet.VehicleStatus{}
		if c.Query("excludeMaintenance", "true") != "false" {
			excludeStatuses = append(excludeStatuses, fleet.VehicleStatusMaintenance)
		}

		result, err := deps.Snapshot.ListActive(c.Context(), excludeStatuses)
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(resultResponse(result))
	}
}

func getVehicle(deps TrackingDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vehicleID := fleet.CanonicalVehicleID(c.Params("vehicleId"))

		vehicle, err := deps.Vehicles.Get(c.Context(), vehicleID)
		if err != nil {
			if errors.Is(err, fleet.ErrNotFound) {
				return notFound(c, "Could not find vehicle matching identifier")
			}
			if errors.Is(err, fleet.ErrUnavailable) {
				// Degrade to the snapshot fallback rather than erroring
				summary, fallbackErr := deps.Snapshot.GetOne(c.Context(), vehicleID)
				if fallbackErr != nil {
					return notFound(c, "Could not find vehicle matching identifier")
				}

				return c.JSON(fiber.Map{
					"success":  true,
					"fallback": true,
					"reason":   "store unavailable",
					"data":     summary,
				})
			}

			return internalError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    vehicle,
		})
	}
}

func updateLocation(deps TrackingDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var update tracker.LocationUpdate
		if err := c.BodyParser(&update); err != nil {
			return badRequest(c, "Invalid request body")
		}

		event, err := deps.Reconciler.ApplyLocationUpdate(c.Context(), update)
		if err != nil {
			return ingestError(c, err)
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"persisted": event.Persisted,
			"location":  event.Body,
		})
	}
}

func updateStatus(deps TrackingDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var update tracker.StatusUpdate
		if err := c.BodyParser(&update); err != nil {
			return badRequest(c, "Invalid request body")
		}

		event, vehicle, err := deps.Reconciler.ApplyStatusUpdate(c.Context(), update)
		if err != nil {
			return ingestError(c, err)
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"persisted": event.Persisted,
			"vehicle":   vehicle,
		})
	}
}

func vehicleHistory(deps TrackingDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vehicleID := fleet.CanonicalVehicleID(c.Params("vehicleId"))

		var from, to time.Time
		if startDate := c.Query("startDate"); startDate != "" {
			parsed, err := time.Parse(time.RFC3339, startDate)
			if err != nil {
				return badRequest(c, "startDate must be RFC3339")
			}
			from = parsed
		}
		if endDate := c.Query("endDate"); endDate != "" {
			parsed, err := time.Parse(time.RFC3339, endDate)
			if err != nil {
				return badRequest(c, "endDate must be RFC3339")
			}
			to = parsed
		}

		limit := int64(c.QueryInt("limit", store.MaxHistoryResults))

		samples, err := deps.History.History(c.Context(), vehicleID, from, to, limit)
		if err != nil {
			if errors.Is(err, fleet.ErrUnavailable) {
				return c.JSON(fiber.Map{
					"success":  true,
					"fallback": true,
					"reason":   "store unavailable",
					"count":    0,
					"data":     []fleet.LocationSample{},
				})
			}

			return internalError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(samples),
			"data":    samples,
		})
	}
}

func nearbyVehicles(deps TrackingDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("latitude") == "" || c.Query("longitude") == "" {
			return badRequest(c, "Latitude and longitude required")
		}

		latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			return badRequest(c, "latitude must be a number")
		}
		longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			return badRequest(c, "longitude must be a number")
		}

		radiusKm := 5.0
		if radiusParam := c.Query("radiusKm"); radiusParam != "" {
			radiusKm, err = strconv.ParseFloat(radiusParam, 64)
			if err != nil {
				return badRequest(c, "radiusKm must be a number")
			}
		}

		result, err := deps.Snapshot.FindNearby(c.Context(), latitude, longitude, radiusKm)
		if err != nil {
			if errors.Is(err, fleet.ErrInvalidInput) {
				return badRequest(c, err.Error())
			}

			return internalError(c, err)
		}

		return c.JSON(resultResponse(result))
	}
}

func resultResponse(result snapshot.Result) fiber.Map {
	response := fiber.Map{
		"success": true,
		"count":   len(result.Summaries),
		"data":    result.Summaries,
	}

	if result.Fallback {
		response["fallback"] = true
		response["reason"] = result.Reason
	}

	return response
}

func ingestError(c *fiber.Ctx, err error) error {
	if errors.Is(err, fleet.ErrInvalidInput) {
		return badRequest(c, err.Error())
	}
	if errors.Is(err, fleet.ErrNotFound) {
		return notFound(c, "Could not find vehicle matching identifier")
	}

	return internalError(c, err)
}

func badRequest(c *fiber.Ctx, message string) error {
	c.Status(fiber.StatusBadRequest)
	return c.JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	c.Status(fiber.StatusNotFound)
	return c.JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")

	c.Status(fiber.StatusInternalServerError)
	return c.JSON(fiber.Map{
		"success": false,
		"error":   "Server error",
	})
}
