package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Relay holds the instrumentation shared by the hub, router and ws server.
type Relay struct {
	ActiveSessions prometheus.Gauge
	ActiveRooms    prometheus.Gauge
	Delivered      prometheus.Counter
	Dropped        prometheus.Counter
	RejectedFrames prometheus.Counter
}

func NewRelay(reg prometheus.Registerer) *Relay {
	f := promauto.With(reg)
	return &Relay{
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "chatrelay_active_sessions",
			Help: "Currently connected websocket sessions.",
		}),
		ActiveRooms: f.NewGauge(prometheus.GaugeOpts{
			Name: "chatrelay_active_rooms",
			Help: "Rooms with at least one member.",
		}),
		Delivered: f.NewCounter(prometheus.CounterOpts{
			Name: "chatrelay_messages_delivered_total",
			Help: "Broadcast payloads enqueued to a member's outbound queue.",
		}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "chatrelay_messages_dropped_total",
			Help: "Broadcast payloads dropped because a member's outbound queue was full.",
		}),
		RejectedFrames: f.NewCounter(prometheus.CounterOpts{
			Name: "chatrelay_frames_rejected_total",
			Help: "Inbound frames dropped as malformed or unknown.",
		}),
	}
}

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
