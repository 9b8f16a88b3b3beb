// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kakei"

// Command outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var commandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "commands",
		Name:      "total",
		Help:      "Command handler invocations by action and outcome.",
	},
	[]string{"action", "outcome"},
)

var recordsStored = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "records",
		Help:      "Records in the slot after the last load or write.",
	},
)

var histogramResponseTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "histogram_response_time_seconds",
		Help:      "HTTP handler latency.",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	},
	[]string{"route", "code"},
)

var securityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "security_events_total",
		Help:      "Rate limited and suspicious requests.",
	},
	[]string{"event"},
)

// Security event labels.
const (
	EventRateLimited = "rate_limited"
	EventSuspicious  = "suspicious"
)

// CountCommand records one handler outcome.
func CountCommand(action, outcome string) {
	commandsTotal.WithLabelValues(action, outcome).Inc()
}

// SetRecords updates the stored records gauge.
func SetRecords(n int) {
	recordsStored.Set(float64(n))
}

// ObserveResponse records HTTP handler latency for route.
func ObserveResponse(route string, code int, elapsed time.Duration) {
	histogramResponseTime.
		WithLabelValues(route, strconv.Itoa(code)).
		Observe(elapsed.Seconds())
}

// CountSecurityEvent records one rate limited or suspicious request.
func CountSecurityEvent(event string) {
	securityEventsTotal.WithLabelValues(event).Inc()
}
