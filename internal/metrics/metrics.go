package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "inquiry_api"

// Dispatch outcomes recorded for notification emails
const (
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
	OutcomeDisabled = "disabled"
)

// Metrics holds all Prometheus collectors of the service
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	InquiriesCreated  *prometheus.CounterVec
	NotesAdded        prometheus.Counter
	LoginAttempts     *prometheus.CounterVec
	EmailDispatches   *prometheus.CounterVec
	FollowUpReminders prometheus.Counter
}

// New creates a Metrics instance on its own registry, including the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		InquiriesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inquiries_created_total",
				Help:      "Inquiries accepted, by product interest",
			},
			[]string{"interest"},
		),
		NotesAdded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inquiry_notes_added_total",
				Help:      "Notes appended to inquiries",
			},
		),
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Admin login attempts by result",
			},
			[]string{"result"},
		),
		EmailDispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "email_dispatches_total",
				Help:      "Notification email dispatches by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		FollowUpReminders: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "follow_up_reminders_total",
				Help:      "Inquiries included in follow-up reminder digests",
			},
		),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
