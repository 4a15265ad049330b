package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Reservation outcome labels.
const (
	OutcomeCreated    = "created"
	OutcomeModified   = "modified"
	OutcomeCanceled   = "canceled"
	OutcomeNoShow     = "no_show_removed"
	OutcomeConflict   = "conflict"
	OutcomeLockFailed = "lock_failed"
	OutcomeInvalid    = "invalid"
	OutcomeError      = "error"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// operation: create|modify|cancel|no_show, outcome: see Outcome* constants
	ReservationsTotal *prometheus.CounterVec

	// Seats reported back in conflict results, per venue.
	ConflictingSeatsTotal *prometheus.CounterVec

	// operation: acquire|release, status: success|failed
	VenueLockDuration *prometheus.HistogramVec

	// status: published|retry|failed
	OutboxJobsTotal *prometheus.CounterVec
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Reservation write attempts by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		ConflictingSeatsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservation_conflicting_seats_total",
				Help: "Seats reported as already taken when a request was rejected",
			},
			[]string{"venue_id"},
		),
		VenueLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "venue_lock_duration_seconds",
				Help:    "Time spent acquiring and releasing venue locks",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		OutboxJobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notification_outbox_jobs_total",
				Help: "Notification outbox jobs processed by status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.ConflictingSeatsTotal,
		m.VenueLockDuration,
		m.OutboxJobsTotal,
	)

	return m
}

// NewNop registers on a private registry; for tests and disabled metrics.
func NewNop() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

func (m *Metrics) ObserveReservation(operation, outcome string) {
	m.ReservationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveConflict(venueID string, seats int) {
	m.ConflictingSeatsTotal.WithLabelValues(venueID).Add(float64(seats))
}

func (m *Metrics) ObserveLock(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.VenueLockDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveOutbox(status string) {
	m.OutboxJobsTotal.WithLabelValues(status).Inc()
}
