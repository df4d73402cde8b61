package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncAttempt("gemini", "ask")
	m.IncAttempt("gemini", "ask")
	m.IncAttempt("openai", "extract")
	m.IncRateLimited("gemini")
	m.IncRotation("gemini")
	m.IncProviderFallback()
	m.IncHeuristicFallback()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.providerAttempts.WithLabelValues("gemini", "ask")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerAttempts.WithLabelValues("openai", "extract")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited.WithLabelValues("gemini")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.credentialRotations.WithLabelValues("gemini")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.heuristicFallbacks))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.IncAttempt("gemini", "ask")
	m.IncRateLimited("gemini")
	m.IncRotation("gemini")
	m.IncProviderFallback()
	m.IncHeuristicFallback()
}
