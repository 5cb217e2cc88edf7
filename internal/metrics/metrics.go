package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Service bundles the prometheus collectors of the request broker.
type Service struct {
	Registry *prometheus.Registry

	RequestsCreated  *prometheus.CounterVec
	RequestsSettled  *prometheus.CounterVec
	PopupsOpened     *prometheus.CounterVec
	BroadcastsSent   *prometheus.CounterVec
	BroadcastsFailed *prometheus.CounterVec
}

// Settlement outcome label values.
const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
	OutcomeClosed   = "closed"
	OutcomeFailed   = "failed"
)

func New() *Service {
	registry := prometheus.NewRegistry()

	s := &Service{
		Registry: registry,
		RequestsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_requests_created_total",
			Help: "Pending user requests created, by request kind.",
		}, []string{"kind"}),
		RequestsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_requests_settled_total",
			Help: "Pending user requests settled, by request kind and outcome.",
		}, []string{"kind", "outcome"}),
		PopupsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_popups_opened_total",
			Help: "Popup windows opened, by window kind.",
		}, []string{"kind"}),
		BroadcastsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_broadcasts_sent_total",
			Help: "Broadcast events delivered to tabs, by event type.",
		}, []string{"event"}),
		BroadcastsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_broadcasts_failed_total",
			Help: "Broadcast deliveries that failed, by event type.",
		}, []string{"event"}),
	}

	registry.MustRegister(
		s.RequestsCreated,
		s.RequestsSettled,
		s.PopupsOpened,
		s.BroadcastsSent,
		s.BroadcastsFailed,
	)

	return s
}
