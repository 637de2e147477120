package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CustomersCreated       prometheus.Counter
	NotificationsPublished *prometheus.CounterVec
	NotificationsFailed    *prometheus.CounterVec
	NotificationsDropped   *prometheus.CounterVec
	AuditEventsConsumed    *prometheus.CounterVec
	AuditEventsRejected    *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CustomersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "registration_customers_created_total",
			Help: "Total number of customers persisted",
		}),
		NotificationsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_notifications_published_total",
			Help: "Notifications handed to the transport successfully",
		}, []string{"topic"}),
		NotificationsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_notifications_failed_total",
			Help: "Notifications that failed to serialize or send",
		}, []string{"topic"}),
		NotificationsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_notifications_dropped_total",
			Help: "Notifications dropped because the dispatch buffer was full or closed",
		}, []string{"topic"}),
		AuditEventsConsumed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_audit_events_consumed_total",
			Help: "Customer events processed by the audit worker",
		}, []string{"topic"}),
		AuditEventsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_audit_events_rejected_total",
			Help: "Customer events the audit worker could not decode",
		}, []string{"topic"}),
	}
}

func (m *Metrics) IncCustomersCreated() {
	if m == nil {
		return
	}
	m.CustomersCreated.Inc()
}

func (m *Metrics) IncPublished(topic string) {
	if m == nil {
		return
	}
	m.NotificationsPublished.WithLabelValues(topic).Inc()
}

func (m *Metrics) IncFailed(topic string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(topic).Inc()
}

func (m *Metrics) IncDropped(topic string) {
	if m == nil {
		return
	}
	m.NotificationsDropped.WithLabelValues(topic).Inc()
}

func (m *Metrics) IncAuditConsumed(topic string) {
	if m == nil {
		return
	}
	m.AuditEventsConsumed.WithLabelValues(topic).Inc()
}

func (m *Metrics) IncAuditRejected(topic string) {
	if m == nil {
		return
	}
	m.AuditEventsRejected.WithLabelValues(topic).Inc()
}
