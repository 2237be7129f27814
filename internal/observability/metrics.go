// Package observability exposes prometheus metrics for the signup service.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "directory",
		Name:      "signups_total",
		Help:      "Number of successful signups, labeled by activity.",
	}, []string{"activity"})

	unregistersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "directory",
		Name:      "unregisters_total",
		Help:      "Number of successful unregistrations, labeled by activity.",
	}, []string{"activity"})

	rejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "directory",
		Name:      "rejections_total",
		Help:      "Number of rejected roster mutations, labeled by reason.",
	}, []string{"reason"})

	rosterSizeGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "directory",
		Name:      "roster_size",
		Help:      "Current participant count per activity.",
	}, []string{"activity"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "signup_service",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests, labeled by method and status.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(signupsTotal, unregistersTotal, rejectionsTotal, rosterSizeGauge, requestDuration)
}

// RecordSignup increments the signup counter for the activity.
func RecordSignup(activity string) {
	signupsTotal.WithLabelValues(activity).Inc()
}

// RecordUnregister increments the unregister counter for the activity.
func RecordUnregister(activity string) {
	unregistersTotal.WithLabelValues(activity).Inc()
}

// RecordRejection counts a rejected mutation by reason, e.g. "not_found".
func RecordRejection(reason string) {
	rejectionsTotal.WithLabelValues(reason).Inc()
}

// SetRosterSize updates the roster size gauge for the activity.
func SetRosterSize(activity string, size int) {
	rosterSizeGauge.WithLabelValues(activity).Set(float64(size))
}

// ObserveRequest records the duration of one served HTTP request.
func ObserveRequest(method string, status int, seconds float64) {
	requestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(seconds)
}
