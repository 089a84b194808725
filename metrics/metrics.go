package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "bookings_total",
			Help:      "Booking requests by outcome.",
		},
		[]string{"result"},
	)

	payments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "payments_total",
			Help:      "Recorded payments by reconciliation outcome.",
		},
		[]string{"result"},
	)

	availability = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "availability_requests_total",
			Help:      "Availability lookups by strategy and cache outcome.",
		},
		[]string{"strategy", "cache"},
	)
)

// Booking outcomes.
const (
	BookingAccepted   = "accepted"
	BookingDuplicate  = "duplicate"
	BookingSlotTaken  = "slot_taken"
	BookingNotOffered = "not_offered"
)

// Payment outcomes.
const (
	PaymentRecorded = "recorded"
	PaymentReplayed = "replayed"
	PaymentOrphaned = "orphaned"
	PaymentDeferred = "deferred"
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookings, payments, availability)
	})
}

func IncBooking(result string) {
	bookings.WithLabelValues(result).Inc()
}

func IncPayment(result string) {
	payments.WithLabelValues(result).Inc()
}

func IncAvailability(strategy, cache string) {
	availability.WithLabelValues(strategy, cache).Inc()
}

// BookingCount returns the current counter; used by tests.
func BookingCount(result string) prometheus.Counter {
	return bookings.WithLabelValues(result)
}

// PaymentCount returns the current counter; used by tests.
func PaymentCount(result string) prometheus.Counter {
	return payments.WithLabelValues(result)
}
