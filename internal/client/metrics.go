package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sustainlog_client_requests_total",
			Help: "Requests sent to the actions collection",
		}, []string{"code", "method"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sustainlog_client_request_duration_seconds",
			Help:    "Round-trip latency of collection requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sustainlog_client_transport_errors_total",
			Help: "Requests that failed before a response arrived",
		}, []string{"op"}),
	}
}

// opLabel maps a request method onto the fixed set of collection operations
// so the failure counter never grows a series per record id.
func opLabel(method string) string {
	switch method {
	case http.MethodGet:
		return "list"
	case http.MethodPost:
		return "create"
	case http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "other"
	}
}

func (m *metrics) instrument(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.requests,
		promhttp.InstrumentRoundTripperDuration(m.latency, next))
}
