package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP request latency by route template and status
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shesafe_http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	BookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shesafe_bookings_created_total",
		Help: "Total bookings created",
	})

	BookingTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shesafe_booking_transitions_total",
		Help: "Booking status transitions by target status",
	}, []string{"to"})

	FeedbackSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shesafe_feedback_submitted_total",
		Help: "Total feedback entries accepted",
	})

	VendorDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shesafe_vendor_decisions_total",
		Help: "Admin verification decisions by action",
	}, []string{"action"})

	VendorsOnboarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shesafe_vendors_onboarded_total",
		Help: "Total vendor profiles created",
	})

	WSConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shesafe_ws_connections",
		Help: "Open notification websocket connections",
	})
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestDuration,
			BookingsCreated,
			BookingTransitions,
			FeedbackSubmitted,
			VendorDecisions,
			VendorsOnboarded,
			WSConnections,
		)
	})
}
