package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	MessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glomers",
			Name:      "messages_received_total",
			Help:      "Total number of decoded requests, by type.",
		},
		[]string{"type"},
	)

	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glomers",
			Name:      "messages_sent_total",
			Help:      "Total number of replies written, by type.",
		},
		[]string{"type"},
	)

	FatalErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glomers",
			Name:      "fatal_errors_total",
			Help:      "Errors that stopped the node, by kind.",
		},
		[]string{"kind"},
	)

	IDsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "glomers",
			Name:      "ids_generated_total",
			Help:      "Total number of unique ids handed out.",
		},
	)

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "glomers",
			Name:      "build_info",
			Help:      "Build info (constant 1, labeled by version).",
		},
		[]string{"version"},
	)
)

func init() {
	Registry.MustRegister(MessagesReceived, MessagesSent, FatalErrors, IDsGenerated, buildInfo)
}

// MetricsHandler exposes /metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// SetBuildInfo should be called once at startup.
func SetBuildInfo(version string) {
	buildInfo.WithLabelValues(version).Set(1)
}
