package api

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wastetrack/wastetrack/pkg/fanout"
	"github.com/wastetrack/wastetrack/pkg/fleet"
	"github.com/wastetrack/wastetrack/pkg/tracker"
)

type socketFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type socketReply struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// RegisterWebsocket mounts the live event gateway. Observers connect
// to receive pushes (optionally scoped to one vehicle via the
// vehicleId query parameter or a later joinVehicleGroup frame);
// driver clients submit updates over the same connection.
func RegisterWebsocket(router fiber.Router, reconciler *tracker.Reconciler, hub *fanout.Hub) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}

		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		handleSocket(conn, reconciler, hub)
	}))
}

func handleSocket(conn *websocket.Conn, reconciler *tracker.Reconciler, hub *fanout.Hub) {
	observer := hub.Subscribe(uuid.NewString(), fleet.CanonicalVehicleID(conn.Query("vehicleId")))

	var writeMutex sync.Mutex
	send := func(reply socketReply) {
		writeMutex.Lock()
		defer writeMutex.Unlock()

		if err := conn.WriteJSON(reply); err != nil {
			log.Debug().Err(err).Str("observer", observer.ID).Msg("Websocket write failed")
		}
	}

	// Pump hub events out until the subscription is closed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range observer.Events() {
			send(socketReply{Type: string(event.Type), Data: event})
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var frame socketFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			send(socketReply{Type: "error", Data: "invalid frame"})
			continue
		}

		handleFrame(reconciler, hub, observer, frame, send)
	}

	hub.Unsubscribe(observer)
	<-done
}

func handleFrame(reconciler *tracker.Reconciler, hub *fanout.Hub, observer *fanout.Observer, frame socketFrame, send func(socketReply)) {
	ctx := context.Background()

	switch frame.Type {
	case "joinVehicleGroup":
		var join struct {
			VehicleID string `json:"vehicleId"`
		}
		if err := json.Unmarshal(frame.Data, &join); err != nil {
			send(socketReply{Type: "error", Data: "invalid joinVehicleGroup payload"})
			return
		}

		hub.Rescope(observer, fleet.CanonicalVehicleID(join.VehicleID))

	case "locationUpdate":
		var update tracker.LocationUpdate
		if err := json.Unmarshal(frame.Data, &update); err != nil {
			send(socketReply{Type: "error", Data: "invalid locationUpdate payload"})
			return
		}

		event, err := reconciler.ApplyLocationUpdate(ctx, update)
		if err != nil {
			send(socketReply{Type: "error", Data: rejectionMessage(err)})
			return
		}

		send(socketReply{Type: "locationUpdateConfirmed", Data: fiber.Map{
			"vehicleId": event.VehicleID,
			"persisted": event.Persisted,
			"timestamp": event.RecordedAt,
		}})

	case "statusUpdate":
		var update tracker.StatusUpdate
		if err := json.Unmarshal(frame.Data, &update); err != nil {
			send(socketReply{Type: "error", Data: "invalid statusUpdate payload"})
			return
		}

		event, _, err := reconciler.ApplyStatusUpdate(ctx, update)
		if err != nil {
			send(socketReply{Type: "error", Data: rejectionMessage(err)})
			return
		}

		send(socketReply{Type: "statusUpdateConfirmed", Data: fiber.Map{
			"vehicleId": event.VehicleID,
			"persisted": event.Persisted,
			"timestamp": event.RecordedAt,
		}})

	case "emergencyAlert":
		var alert fleet.EmergencyAlertBody
		if err := json.Unmarshal(frame.Data, &alert); err != nil {
			send(socketReply{Type: "error", Data: "invalid emergencyAlert payload"})
			return
		}

		alert.VehicleID = fleet.CanonicalVehicleID(alert.VehicleID)
		alert.Timestamp = time.Now()

		hub.Publish(fleet.TrackedEvent{
			Type:       fleet.EventTypeEmergencyAlert,
			VehicleID:  alert.VehicleID,
			Body:       alert,
			RecordedAt: alert.Timestamp,
		})

	default:
		send(socketReply{Type: "error", Data: "unknown frame type"})
	}
}

func rejectionMessage(err error) string {
	if errors.Is(err, fleet.ErrNotFound) {
		return "vehicle not found"
	}

	return err.Error()
}
