package events

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Number of roster events successfully published to Kafka, labeled by action.",
	}, []string{"action"})

	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "failed_total",
		Help:      "Number of roster events that failed to publish.",
	})
)

func init() {
	prometheus.MustRegister(publishedCounter, failedCounter)
}
