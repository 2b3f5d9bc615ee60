package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wastetrack/wastetrack/pkg/api/routes"
	"github.com/wastetrack/wastetrack/pkg/fanout"
	"github.com/wastetrack/wastetrack/pkg/snapshot"
	"github.com/wastetrack/wastetrack/pkg/store"
	"github.com/wastetrack/wastetrack/pkg/tracker"
)

type Dependencies struct {
	Reconciler *tracker.Reconciler
	Snapshot   *snapshot.Service
	Hub        *fanout.Hub

	Vehicles store.VehicleStore
	History  store.HistoryStore
}

func SetupServer(listen string, deps Dependencies) error {
	webApp := NewApp(deps)

	return webApp.Listen(listen)
}

func NewApp(deps Dependencies) *fiber.App {
	webApp := fiber.New()
	webApp.Use(requestLogging())

	webApp.Get("/version", routes.APIVersion)

	group := webApp.Group("/tracking")

	routes.TrackingRouter(group, routes.TrackingDependencies{
		Reconciler: deps.Reconciler,
		Snapshot:   deps.Snapshot,
		Vehicles:   deps.Vehicles,
		History:    deps.History,
	})

	RegisterWebsocket(group, deps.Reconciler, deps.Hub)

	return webApp
}
