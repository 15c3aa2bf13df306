package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for sign-ups, reminders and the HTTP layer.
// Each instance owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	RegistrationsCreated *prometheus.CounterVec
	RegistrationsDeleted prometheus.Counter
	MailsQueued          *prometheus.CounterVec
	RemindersSent        prometheus.Counter
	OccupancyPercentage  prometheus.Gauge
	StreamSubscribers    prometheus.Gauge
	RequestDuration      *prometheus.HistogramVec
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RegistrationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gebedsrooster_registrations_created_total",
			Help: "Registrations written, by sign-up form",
		}, []string{"form"}),
		RegistrationsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "gebedsrooster_registrations_deleted_total",
			Help: "Registrations removed",
		}),
		MailsQueued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gebedsrooster_mails_queued_total",
			Help: "Mail documents added to the mail collection, by template",
		}, []string{"template"}),
		RemindersSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "gebedsrooster_reminders_sent_total",
			Help: "Reminder tasks that queued a mail",
		}),
		OccupancyPercentage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gebedsrooster_occupancy_percentage",
			Help: "Share of campaign hours with at least one registration",
		}),
		StreamSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gebedsrooster_stream_subscribers",
			Help: "Open schedule event streams",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gebedsrooster_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncrementRegistrations records n registrations written through form.
func (m *Metrics) IncrementRegistrations(form string, n int) {
	if m == nil {
		return
	}
	m.RegistrationsCreated.WithLabelValues(form).Add(float64(n))
}

func (m *Metrics) IncrementDeleted() {
	if m == nil {
		return
	}
	m.RegistrationsDeleted.Inc()
}

func (m *Metrics) IncrementMail(template string) {
	if m == nil {
		return
	}
	m.MailsQueued.WithLabelValues(template).Inc()
}

func (m *Metrics) IncrementReminders() {
	if m == nil {
		return
	}
	m.RemindersSent.Inc()
}

func (m *Metrics) SetOccupancy(pct int) {
	if m == nil {
		return
	}
	m.OccupancyPercentage.Set(float64(pct))
}

// StreamOpened increments the subscriber gauge and returns the matching decrement.
func (m *Metrics) StreamOpened() func() {
	if m == nil {
		return func() {}
	}
	m.StreamSubscribers.Inc()
	return m.StreamSubscribers.Dec
}

// ObserveRequest records a request duration.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
