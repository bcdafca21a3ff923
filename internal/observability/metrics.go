package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects portal metrics on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	guardDecisions *prometheus.CounterVec
	logouts        *prometheus.CounterVec
}

// NewMetrics registers the portal collectors plus Go/process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "guard_decisions_total",
			Help:      "Navigation guard decisions by outcome and target route.",
		}, []string{"outcome", "target"}),
		logouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "logout_total",
			Help:      "Logouts by remote termination result.",
		}, []string{"remote"}),
	}
	reg.MustRegister(
		m.guardDecisions,
		m.logouts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordGuardDecision counts one guard evaluation. target is the redirect
// route for redirects and the requested route when proceeding.
func (m *Metrics) RecordGuardDecision(outcome, target string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(outcome, target).Inc()
}

// ObserveLogout implements session.LogoutObserver.
func (m *Metrics) ObserveLogout(remoteOK bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !remoteOK {
		result = "failed"
	}
	m.logouts.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry (tests, extra collectors).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
