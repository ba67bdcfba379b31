package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for gateway round trips.
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeMalformed      = "malformed_response"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "Total number of payment gateway requests",
	}, []string{
		"endpoint", // register.do, getOrderStatusExtended.do
		"outcome",  // ok, transport_error, malformed_response
	})

	gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "gateway_request_duration_seconds",
		Help: "Payment gateway round-trip time",
		// 100ms to 30s covers typical bank processing times
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"endpoint",
	})
)

// RecordGatewayRequest records one gateway round trip.
func RecordGatewayRequest(endpoint, outcome string, elapsed time.Duration) {
	gatewayRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
