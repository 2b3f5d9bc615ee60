package consumer

import (
	"fmt"
	"net/http"

	"github.com/adjust/rmq/v5"
	"github.com/wastetrack/wastetrack/pkg/database"
	"github.com/wastetrack/wastetrack/pkg/redis_client"
)

type queueStatsHandler struct {
	connection rmq.Connection
}

func (h queueStatsHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	queues, err := h.connection.GetOpenQueues()
	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(writer, err)

		return
	}

	stats, err := h.connection.CollectStats(queues)
	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(writer, err)

		return
	}

	fmt.Fprint(writer, stats.GetHtml(request.FormValue("layout"), request.FormValue("refresh")))
}

// healthProbe reports whether both backing stores answer. It matches
// how the ingest degrades: a failing mongo ping means updates are
// broadcast-only until the store comes back.
func healthProbe(writer http.ResponseWriter, request *http.Request) {
	if err := redis_client.Client.Ping(request.Context()).Err(); err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(writer, "redis: %s", err)

		return
	}

	if err := database.Instance.Client.Ping(request.Context(), nil); err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(writer, "mongo: %s", err)

		return
	}

	writer.WriteHeader(http.StatusOK)
	fmt.Fprint(writer, "OK")
}
