package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "visit_route_op_duration_seconds",
		Help:    "Duration of timed operations.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"op", "outcome"})

	oracleCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visit_route_oracle_calls_total",
		Help: "Directions oracle calls by call shape and outcome.",
	}, []string{"call", "outcome"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visit_route_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "status"})
)

// Oracle call shapes.
const (
	CallRoute    = "route"
	CallDistance = "distance"
)

// CountOracleCall records one oracle call outcome.
func CountOracleCall(call string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	oracleCalls.WithLabelValues(call, outcome).Inc()
}

// CountHTTPRequest records one served HTTP request.
func CountHTTPRequest(method, status string) {
	httpRequests.WithLabelValues(method, status).Inc()
}
