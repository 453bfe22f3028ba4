package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectionsTotal counts accepted websocket connections, joined or not.
	ConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_connections_total",
		Help: "Accepted websocket connections.",
	})

	// MessagesTotal counts chat messages fanned out by room actors.
	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Chat messages broadcast to rooms.",
	})

	// ForcedDisconnectsTotal counts members removed because their send queue overflowed.
	ForcedDisconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_forced_disconnects_total",
		Help: "Members disconnected for not draining their send queue.",
	})

	// ActiveRooms tracks rooms created since startup (rooms are never torn down).
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_rooms",
		Help: "Rooms created.",
	})

	// ActiveMembers tracks current room membership across all rooms.
	ActiveMembers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_members",
		Help: "Current members across all rooms.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
