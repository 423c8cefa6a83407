// Package metrics holds the Prometheus collectors of the relay and the
// handler that exposes them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "relaychat"

// Outcome label values for EventsHandled.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

var (
	// Connections is the number of open websocket connections.
	Connections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connections",
		Help:      "Open websocket connections.",
	})

	// Users is the number of connections that have joined a room.
	Users = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "users",
		Help:      "Registered users across all rooms.",
	})

	// EventsHandled counts inbound events by name and outcome.
	EventsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_handled_total",
		Help:      "Inbound events handled, by event and outcome.",
	}, []string{"event", "outcome"})

	// FramesSent counts frames queued to clients by event name.
	FramesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_sent_total",
		Help:      "Outbound frames queued to client connections, by event.",
	}, []string{"event"})

	// FramesDropped counts frames dropped because a client's send buffer was full.
	FramesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_dropped_total",
		Help:      "Outbound frames dropped on full client send buffers.",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
