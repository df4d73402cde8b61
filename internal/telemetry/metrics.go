// Package telemetry exposes Prometheus counters for the provider fallback
// path. A nil *Metrics is valid and counts nothing, so wiring stays
// optional in tests.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counter families for provider orchestration.
type Metrics struct {
	providerAttempts    *prometheus.CounterVec
	rateLimited         *prometheus.CounterVec
	credentialRotations *prometheus.CounterVec
	providerFallbacks   prometheus.Counter
	heuristicFallbacks  prometheus.Counter
}

// New registers the meetmind counter families on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		providerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meetmind_provider_attempts_total",
			Help: "Provider API call attempts by provider and operation.",
		}, []string{"provider", "operation"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meetmind_provider_rate_limited_total",
			Help: "429 responses received, by provider.",
		}, []string{"provider"}),
		credentialRotations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meetmind_credential_rotations_total",
			Help: "Credential pool rotations triggered by rate limits.",
		}, []string{"provider"}),
		providerFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meetmind_provider_fallbacks_total",
			Help: "Times the orchestrator moved past a failed provider.",
		}),
		heuristicFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meetmind_heuristic_fallbacks_total",
			Help: "Extractions served by the heuristic path after AI failure.",
		}),
	}
	reg.MustRegister(
		m.providerAttempts,
		m.rateLimited,
		m.credentialRotations,
		m.providerFallbacks,
		m.heuristicFallbacks,
	)
	return m
}

// IncAttempt counts one provider call attempt.
func (m *Metrics) IncAttempt(provider, operation string) {
	if m == nil {
		return
	}
	m.providerAttempts.WithLabelValues(provider, operation).Inc()
}

// IncRateLimited counts one 429 response.
func (m *Metrics) IncRateLimited(provider string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(provider).Inc()
}

// IncRotation counts one credential rotation.
func (m *Metrics) IncRotation(provider string) {
	if m == nil {
		return
	}
	m.credentialRotations.WithLabelValues(provider).Inc()
}

// IncProviderFallback counts one provider-to-provider fallback.
func (m *Metrics) IncProviderFallback() {
	if m == nil {
		return
	}
	m.providerFallbacks.Inc()
}

// IncHeuristicFallback counts one AI-to-heuristic fallback.
func (m *Metrics) IncHeuristicFallback() {
	if m == nil {
		return
	}
	m.heuristicFallbacks.Inc()
}
