package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/rechat/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	registry    *prometheus.Registry
	turns       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry, so several
// engines in one process (or one test binary) never collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rechat_turns_total",
				Help: "Total number of interpreted lines",
			},
			[]string{"mode", "action"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rechat_transitions_total",
				Help: "Total number of mode changes",
			},
			[]string{"from", "to"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rechat_rejected_total",
				Help: "Total number of invalid commands",
			},
			[]string{"mode"},
		),
	}
	m.registry.MustRegister(m.turns, m.transitions, m.rejected)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record every turn.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			m.turns.WithLabelValues(string(e.Mode), string(e.Action)).Inc()
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(string(e.From.Mode()), string(e.To.Mode())).Inc()
		},
		OnReject: func(_ context.Context, e *domain.TurnEvent) {
			m.rejected.WithLabelValues(string(e.Mode)).Inc()
		},
	}
}
